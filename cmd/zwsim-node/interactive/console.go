// Package interactive provides the interactive command-line console
// for zwsim-node.
package interactive

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/zwsim-project/zwsim-go/pkg/commandclass"
	"github.com/zwsim-project/zwsim-go/pkg/fixture"
	"github.com/zwsim-project/zwsim-go/pkg/simnode"
)

// Console handles interactive mode for zwsim-node.
type Console struct {
	node    *simnode.SimNode
	stepper *simnode.Stepper
	store   *simnode.StateStore
	rl      *readline.Instance
}

// New creates a new interactive console. The state store may be nil
// when persistence is disabled.
func New(node *simnode.SimNode, stepper *simnode.Stepper, store *simnode.StateStore) (*Console, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "node> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	return &Console{
		node:    node,
		stepper: stepper,
		store:   store,
		rl:      rl,
	}, nil
}

// Stdout returns a writer that properly coordinates with the readline input.
// Use this for log output to avoid interfering with the command prompt.
func (c *Console) Stdout() io.Writer {
	return c.rl.Stdout()
}

// Stderr returns a writer that properly coordinates with the readline input.
func (c *Console) Stderr() io.Writer {
	return c.rl.Stderr()
}

// Run starts the interactive command loop.
func (c *Console) Run(ctx context.Context, cancel context.CancelFunc) {
	defer c.rl.Close()

	c.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := c.rl.Readline()
		if err != nil {
			// EOF or interrupt
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(c.rl.Stdout(), "Exiting...")
			cancel()
			return
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		parts := strings.Fields(input)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "help", "?":
			c.printHelp()

		case "info", "i":
			c.cmdInfo()

		case "values", "v":
			c.cmdValues(args)

		case "get", "g":
			c.cmdGet(args)

		case "set", "s":
			c.cmdSet(args)

		case "dump", "d":
			c.cmdDump()

		case "dirty":
			c.cmdDirty()

		case "save":
			c.cmdSave()

		case "start", "sim-start":
			c.cmdStart(ctx)

		case "stop", "sim-stop":
			c.cmdStop()

		case "status":
			c.cmdStatus()

		case "quit", "exit", "q":
			fmt.Fprintln(c.rl.Stdout(), "Exiting...")
			cancel()
			return

		default:
			fmt.Fprintf(c.rl.Stdout(), "Unknown command: %s (type 'help' for commands)\n", cmd)
		}
	}
}

func (c *Console) printHelp() {
	fmt.Fprintln(c.rl.Stdout(), `
Node Commands:
  Inspection:
    info               - Show node identity
    values [cc]        - List values (optionally filtered by command class)
    get <value-id>     - Read a value
    dump               - Print the node as a fixture document with current values
    dirty              - List values changed since the last save

  Control:
    set <value-id> <v> - Write a value (metadata rules apply)
    save               - Save value state to the state file

  Simulation:
    start              - Start simulation
    stop               - Stop simulation
    status             - Show node status

  General:
    help               - Show this help
    quit               - Exit node

  Value ID Format:
    endpoint-commandClass-property[-propertyKey]
    e.g. 0-37-targetValue or 0-50-value-65537`)
}

// cmdInfo shows the node identity.
func (c *Console) cmdInfo() {
	node := c.node.Fixture()

	fmt.Fprintln(c.rl.Stdout(), "\nNode Identity")
	fmt.Fprintln(c.rl.Stdout(), "-------------------------------------------")
	fmt.Fprintf(c.rl.Stdout(), "  Node ID:       %d\n", node.NodeID)
	fmt.Fprintf(c.rl.Stdout(), "  Name:          %s\n", node.DisplayName())
	fmt.Fprintf(c.rl.Stdout(), "  Status:        %s\n", node.Status)
	fmt.Fprintf(c.rl.Stdout(), "  Manufacturer:  0x%04x\n", node.ManufacturerID)
	fmt.Fprintf(c.rl.Stdout(), "  Product:       0x%04x:0x%04x\n", node.ProductType, node.ProductID)
	if node.FirmwareVersion != "" {
		fmt.Fprintf(c.rl.Stdout(), "  Firmware:      %s\n", node.FirmwareVersion)
	}

	fmt.Fprintf(c.rl.Stdout(), "  Command Classes (%d):\n", len(node.CommandClasses))
	for _, info := range node.CommandClasses {
		fmt.Fprintf(c.rl.Stdout(), "      0x%02x %s (v%d)\n", int(info.ID), commandclass.Name(info.ID), info.Version)
	}
	fmt.Fprintln(c.rl.Stdout())
}

// cmdValues lists values, optionally filtered by a command class.
func (c *Console) cmdValues(args []string) {
	var filter *commandclass.ID
	if len(args) > 0 {
		cc, ok := commandclass.Resolve(args[0])
		if !ok {
			fmt.Fprintf(c.rl.Stdout(), "Unknown command class: %s\n", args[0])
			return
		}
		filter = &cc
	}

	count := 0
	for _, id := range c.node.ValueIDs() {
		if filter != nil && id.CommandClass != *filter {
			continue
		}
		count++
		c.printValue(id)
	}

	if count == 0 {
		fmt.Fprintln(c.rl.Stdout(), "No values")
	}
}

// cmdGet reads one value.
func (c *Console) cmdGet(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(c.rl.Stdout(), "Usage: get <value-id>")
		fmt.Fprintln(c.rl.Stdout(), "  Example: get 0-37-targetValue")
		return
	}

	id, err := fixture.ParseValueID(args[0])
	if err != nil {
		fmt.Fprintf(c.rl.Stdout(), "Invalid value ID: %v\n", err)
		return
	}

	c.printValue(id)
}

// cmdSet writes one value.
func (c *Console) cmdSet(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(c.rl.Stdout(), "Usage: set <value-id> <value>")
		fmt.Fprintln(c.rl.Stdout(), "  Example: set 0-37-targetValue true")
		return
	}

	id, err := fixture.ParseValueID(args[0])
	if err != nil {
		fmt.Fprintf(c.rl.Stdout(), "Invalid value ID: %v\n", err)
		return
	}

	value := parseValue(strings.Join(args[1:], " "))
	if err := c.node.Set(id, value); err != nil {
		fmt.Fprintf(c.rl.Stdout(), "Write failed: %v\n", err)
		return
	}

	fmt.Fprintln(c.rl.Stdout(), "OK")
}

// cmdDump prints the node as a fixture document with current values.
func (c *Console) cmdDump() {
	data, err := fixture.Encode(c.node.Snapshot(), fixture.FormatJSON)
	if err != nil {
		fmt.Fprintf(c.rl.Stdout(), "Dump failed: %v\n", err)
		return
	}
	fmt.Fprintln(c.rl.Stdout(), string(data))
}

// cmdDirty lists values changed since the last save.
func (c *Console) cmdDirty() {
	dirty := c.node.DirtyValueIDs()
	if len(dirty) == 0 {
		fmt.Fprintln(c.rl.Stdout(), "No unsaved changes")
		return
	}

	ids := make([]string, 0, len(dirty))
	for _, id := range dirty {
		ids = append(ids, id.String())
	}
	sort.Strings(ids)

	fmt.Fprintf(c.rl.Stdout(), "Unsaved changes (%d):\n", len(dirty))
	for _, id := range ids {
		fmt.Fprintf(c.rl.Stdout(), "  %s\n", id)
	}
}

// cmdSave persists the current value state.
func (c *Console) cmdSave() {
	if c.store == nil {
		fmt.Fprintln(c.rl.Stdout(), "No state file configured (use -state)")
		return
	}

	if err := c.store.SaveNode(c.node); err != nil {
		fmt.Fprintf(c.rl.Stdout(), "Save failed: %v\n", err)
		return
	}

	fmt.Fprintf(c.rl.Stdout(), "Saved state to %s\n", c.store.Path())
}

// cmdStart starts the simulation.
func (c *Console) cmdStart(ctx context.Context) {
	if c.stepper.Running() {
		fmt.Fprintln(c.rl.Stdout(), "Simulation already running")
		return
	}
	c.stepper.Start(ctx)
}

// cmdStop stops the simulation.
func (c *Console) cmdStop() {
	if !c.stepper.Running() {
		fmt.Fprintln(c.rl.Stdout(), "Simulation not running")
		return
	}
	c.stepper.Stop()
}

// cmdStatus shows the node status.
func (c *Console) cmdStatus() {
	fmt.Fprintln(c.rl.Stdout(), "\nNode Status")
	fmt.Fprintln(c.rl.Stdout(), "-------------------------------------------")
	fmt.Fprintf(c.rl.Stdout(), "  Node ID:    %d\n", c.node.NodeID())
	fmt.Fprintf(c.rl.Stdout(), "  Session:    %s\n", c.node.SessionID())
	fmt.Fprintf(c.rl.Stdout(), "  Values:     %d\n", len(c.node.ValueIDs()))

	simStatus := "stopped"
	if c.stepper.Running() {
		simStatus = "running"
	}
	fmt.Fprintf(c.rl.Stdout(), "  Simulation: %s\n", simStatus)

	if c.store != nil {
		fmt.Fprintf(c.rl.Stdout(), "  State file: %s\n", c.store.Path())
	}
	fmt.Fprintf(c.rl.Stdout(), "  Unsaved:    %d\n", len(c.node.DirtyValueIDs()))
	fmt.Fprintln(c.rl.Stdout())
}

// printValue prints one value line with access flags and metadata.
func (c *Console) printValue(id fixture.ValueID) {
	meta, err := c.node.Metadata(id)
	if err != nil {
		fmt.Fprintf(c.rl.Stdout(), "Error: %v\n", err)
		return
	}

	access := ""
	if meta.Readable {
		access += "R"
	}
	if meta.Writeable {
		access += "W"
	}
	if access == "" {
		access = "-"
	}

	label := meta.Label
	if label == "" {
		label = id.Property.String()
	}

	current, err := c.node.Get(id)
	valueStr := "(not readable)"
	if err == nil {
		valueStr = fmt.Sprintf("%v", current)
		if meta.Unit != "" {
			valueStr += " " + meta.Unit
		}
	}

	fmt.Fprintf(c.rl.Stdout(), "  %-36s [%-2s %s] %s = %s\n",
		id.String(), access, meta.Type, label, valueStr)
}

// parseValue parses a console argument into a typed value
// (bool, then number, then string).
func parseValue(s string) any {
	if v, err := strconv.ParseBool(s); err == nil {
		return v
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v
	}
	return strings.Trim(s, "\"'")
}
