// Command zwsim-node runs one simulated Z-Wave node from a device
// state fixture.
//
// This command demonstrates a complete simulated node with:
//   - Fixture loading and validation
//   - Persistent value state across restarts
//   - Synthetic sensor data in simulation mode
//   - mDNS discovery advertising
//   - Home Assistant MQTT discovery and state publishing
//   - Interactive console for inspecting and writing values
//
// Usage:
//
//	zwsim-node -fixture <path> [flags]
//
// Flags:
//
//	-fixture string      Device state fixture file (JSON, YAML, or CBOR)
//	-state string        State file for persisting value changes
//	-simulate            Enable simulation mode with synthetic data
//	-interval duration   Simulation step interval (default 5s)
//	-mdns                Advertise the node via mDNS
//	-mqtt                Bridge the node to an MQTT broker
//	-mqtt-config string  MQTT bridge configuration file (YAML)
//	-port int            Advertised service port (default 3000)
//	-interactive         Start the interactive console
//
// Examples:
//
//	# Run a wall plug fixture with simulation and the console
//	zwsim-node -fixture fixtures/wall-plug.json -interactive
//
//	# Run with persistent state, mDNS, and Home Assistant MQTT
//	zwsim-node -fixture fixtures/multisensor.yaml -state /var/lib/zwsim/node7.json -mdns -mqtt
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/zwsim-project/zwsim-go/cmd/zwsim-node/interactive"
	"github.com/zwsim-project/zwsim-go/pkg/discovery"
	"github.com/zwsim-project/zwsim-go/pkg/fixture"
	"github.com/zwsim-project/zwsim-go/pkg/fixture/rules"
	"github.com/zwsim-project/zwsim-go/pkg/lint"
	"github.com/zwsim-project/zwsim-go/pkg/mqttbridge"
	"github.com/zwsim-project/zwsim-go/pkg/simnode"
)

// Config holds the node runner configuration.
type Config struct {
	FixtureFile string
	StateFile   string
	Simulate    bool
	Interval    time.Duration
	MDNS        bool
	MQTT        bool
	MQTTConfig  string
	Port        int
	Interactive bool
	LogLevel    string
}

var config Config

func init() {
	flag.StringVar(&config.FixtureFile, "fixture", "", "Device state fixture file (JSON, YAML, or CBOR)")
	flag.StringVar(&config.StateFile, "state", "", "State file for persisting value changes")
	flag.BoolVar(&config.Simulate, "simulate", false, "Enable simulation mode with synthetic data")
	flag.DurationVar(&config.Interval, "interval", simnode.DefaultStepInterval, "Simulation step interval")
	flag.BoolVar(&config.MDNS, "mdns", false, "Advertise the node via mDNS")
	flag.BoolVar(&config.MQTT, "mqtt", false, "Bridge the node to an MQTT broker")
	flag.StringVar(&config.MQTTConfig, "mqtt-config", "", "MQTT bridge configuration file (YAML)")
	flag.IntVar(&config.Port, "port", discovery.DefaultPort, "Advertised service port")
	flag.BoolVar(&config.Interactive, "interactive", false, "Start the interactive console")
	flag.StringVar(&config.LogLevel, "log-level", "info", "Log level: debug, info, warn, error")
}

func main() {
	// Local .env overrides for development setups.
	_ = godotenv.Load()

	flag.Parse()
	setupLogging(config.LogLevel)

	if config.FixtureFile == "" {
		log.Fatal("No fixture file specified (use -fixture)")
	}

	node, err := loadNode(config.FixtureFile)
	if err != nil {
		log.Fatalf("Failed to load fixture: %v", err)
	}

	sim := simnode.New(node)

	log.Println("Z-Wave Node Simulator")
	log.Println("=====================")
	log.Printf("Node: %d (%s)", sim.NodeID(), node.DisplayName())
	log.Printf("Session: %s", sim.SessionID())
	log.Printf("Values: %d", len(sim.ValueIDs()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var store *simnode.StateStore
	if config.StateFile != "" {
		store = simnode.NewStateStore(config.StateFile)
		restored, err := store.RestoreNode(sim)
		if err != nil {
			log.Fatalf("Failed to restore state: %v", err)
		}
		if restored {
			log.Printf("Restored state from %s", store.Path())
		}
	}

	var advertiser *discovery.MDNSAdvertiser
	if config.MDNS {
		advertiser, err = discovery.NewMDNSAdvertiser(discovery.DefaultAdvertiserConfig())
		if err != nil {
			log.Fatalf("Failed to create mDNS advertiser: %v", err)
		}
		info := nodeInfo(sim)
		if err := advertiser.Advertise(ctx, info); err != nil {
			log.Fatalf("Failed to advertise node: %v", err)
		}
		log.Printf("Advertising %s on %s", discovery.InstanceName(info), discovery.ServiceType)
		defer advertiser.StopAll()
	}

	var bridge *mqttbridge.Bridge
	if config.MQTT {
		mqttCfg, err := mqttbridge.LoadConfig(config.MQTTConfig)
		if err != nil {
			log.Fatalf("Failed to load MQTT configuration: %v", err)
		}
		bridge = mqttbridge.New(mqttCfg, sim)
		if err := bridge.Start(ctx); err != nil {
			log.Fatalf("Failed to start MQTT bridge: %v", err)
		}
		defer bridge.Stop()
	}

	stepper := simnode.NewStepper(sim, config.Interval)
	if config.Simulate {
		stepper.Start(ctx)
	}
	defer stepper.Stop()

	if config.Interactive {
		console, err := interactive.New(sim, stepper, store)
		if err != nil {
			log.Fatalf("Failed to start console: %v", err)
		}
		log.SetOutput(console.Stdout())
		go console.Run(ctx, cancel)
	}

	// Wait for shutdown signal or console exit.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Printf("Received signal: %v", sig)
	case <-ctx.Done():
	}

	log.Println("Shutting down...")

	if store != nil {
		if err := store.SaveNode(sim); err != nil {
			log.Printf("Error saving state: %v", err)
		} else {
			log.Printf("Saved state to %s", store.Path())
		}
	}

	log.Println("Goodbye!")
}

func setupLogging(level string) {
	log.SetFlags(log.Ltime | log.Lmicroseconds)

	switch level {
	case "debug":
		log.SetFlags(log.Ltime | log.Lmicroseconds | log.Lshortfile)
	case "warn", "error":
		log.SetFlags(log.Ltime)
	}
}

// loadNode loads a fixture file and refuses to run on validation errors.
func loadNode(path string) (*fixture.Node, error) {
	node, err := fixture.Load(path)
	if err != nil {
		return nil, err
	}

	result := fixture.Validate(node, fixture.ValidateOptions{
		Registry:    rules.NewDefaultRegistry(),
		MinSeverity: lint.SeverityWarning,
	})

	for _, w := range result.Warnings {
		log.Printf("Warning: %s: %s (%s)", w.Code, w.Message, w.Subject)
	}

	if !result.Valid {
		for _, e := range result.Errors {
			log.Printf("Error: %s: %s (%s)", e.Code, e.Message, e.Subject)
		}
		return nil, fmt.Errorf("fixture failed validation with %d errors", len(result.Errors))
	}

	return node, nil
}

func nodeInfo(sim *simnode.SimNode) *discovery.NodeInfo {
	node := sim.Fixture()
	return &discovery.NodeInfo{
		NodeID:          node.NodeID,
		SessionID:       sim.SessionID(),
		Name:            node.DisplayName(),
		ManufacturerID:  node.ManufacturerID,
		ProductID:       node.ProductID,
		ProductType:     node.ProductType,
		FirmwareVersion: node.FirmwareVersion,
		ValueCount:      len(node.Values),
		Port:            uint16(config.Port),
	}
}
