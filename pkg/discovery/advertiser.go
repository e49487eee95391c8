package discovery

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/enbility/zeroconf/v3"
)

// Advertiser publishes simulated nodes over mDNS.
type Advertiser interface {
	// Advertise starts advertising a node. Advertising the same node ID
	// again replaces the previous registration.
	Advertise(ctx context.Context, info *NodeInfo) error

	// Update updates the TXT records of an advertised node.
	Update(nodeID int, info *NodeInfo) error

	// Stop stops advertising a node.
	Stop(nodeID int) error

	// StopAll stops all advertisements.
	StopAll()
}

// AdvertiserConfig configures advertiser behavior.
type AdvertiserConfig struct {
	// Interface specifies which network interface to use.
	// Empty string means all interfaces.
	Interface string

	// TTL is the DNS record TTL.
	// Default: 120 seconds.
	TTL time.Duration
}

// DefaultAdvertiserConfig returns the default advertiser configuration.
func DefaultAdvertiserConfig() AdvertiserConfig {
	return AdvertiserConfig{
		Interface: "",
		TTL:       120 * time.Second,
	}
}

// MDNSAdvertiser implements the Advertiser interface using zeroconf.
type MDNSAdvertiser struct {
	config AdvertiserConfig

	mu sync.Mutex

	// Active services keyed by node ID
	servers map[int]*zeroconf.Server
}

// NewMDNSAdvertiser creates a new mDNS advertiser.
func NewMDNSAdvertiser(config AdvertiserConfig) (*MDNSAdvertiser, error) {
	return &MDNSAdvertiser{
		config:  config,
		servers: make(map[int]*zeroconf.Server),
	}, nil
}

// getInterfaces returns the network interfaces to use for advertising.
// Returns nil to use all interfaces.
func (a *MDNSAdvertiser) getInterfaces() []net.Interface {
	if a.config.Interface == "" {
		return nil
	}

	iface, err := net.InterfaceByName(a.config.Interface)
	if err != nil {
		return nil
	}
	return []net.Interface{*iface}
}

// InstanceName builds the mDNS instance name for a node.
func InstanceName(info *NodeInfo) string {
	name := fmt.Sprintf("zwsim-%03d", info.NodeID)
	if len(name) > MaxInstanceNameLen {
		name = name[:MaxInstanceNameLen]
	}
	return name
}

// Advertise starts advertising a simulated node.
func (a *MDNSAdvertiser) Advertise(ctx context.Context, info *NodeInfo) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Stop existing for this node if any
	if server, exists := a.servers[info.NodeID]; exists {
		server.Shutdown()
		delete(a.servers, info.NodeID)
	}

	instanceName := InstanceName(info)
	if err := ValidateInstanceName(instanceName); err != nil {
		return err
	}

	// Build TXT records
	txtRecords := EncodeNodeTXT(info)
	txtStrings := TXTRecordsToStrings(txtRecords)

	// Determine port
	port := int(info.Port)
	if port == 0 {
		port = DefaultPort
	}

	// Register service
	var opts []zeroconf.ServerOption
	if a.config.TTL > 0 {
		opts = append(opts, zeroconf.TTL(uint32(a.config.TTL.Seconds())))
	}

	// Get interfaces (nil means all interfaces)
	ifaces := a.getInterfaces()

	server, err := zeroconf.Register(
		instanceName,
		ServiceType,
		Domain,
		port,
		txtStrings,
		ifaces,
		opts...,
	)
	if err != nil {
		return fmt.Errorf("failed to register node service: %w", err)
	}

	a.servers[info.NodeID] = server
	return nil
}

// Update updates TXT records for an advertised node.
func (a *MDNSAdvertiser) Update(nodeID int, info *NodeInfo) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	server, exists := a.servers[nodeID]
	if !exists {
		return ErrNotFound
	}

	txtRecords := EncodeNodeTXT(info)
	server.SetText(TXTRecordsToStrings(txtRecords))

	return nil
}

// Stop stops advertising a node.
func (a *MDNSAdvertiser) Stop(nodeID int) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	server, exists := a.servers[nodeID]
	if !exists {
		return ErrNotFound
	}

	server.Shutdown()
	delete(a.servers, nodeID)
	return nil
}

// StopAll stops all advertisements.
func (a *MDNSAdvertiser) StopAll() {
	a.mu.Lock()
	defer a.mu.Unlock()

	for id, server := range a.servers {
		server.Shutdown()
		delete(a.servers, id)
	}
}
