package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"nescore/internal/nlog"
)

// CLI is the command tree: run a ROM, print its header, or print the
// version, or open the GTK recent-ROMs picker. Grounded on the reference
// codebase's cli.go, trimmed to this project's headless-capable core (no
// input-capture submode, since that's an SDL2-scancode-recording concern
// this project's simpler fixed keymap doesn't need).
type CLI struct {
	Run      RunCmd      `cmd:"" help:"Run a ROM in the emulator." default:"true"`
	RomInfos RomInfosCmd `cmd:"" name:"rom-infos" help:"Print ROM header fields and exit."`
	Recent   RecentCmd   `cmd:"" help:"Open the recent-ROMs picker."`
	Version  VersionCmd  `cmd:"" help:"Print version and exit."`

	Log logModMask `help:"${log_help}" placeholder:"mod0,mod1,..."`
}

type RecentCmd struct{}

type RunCmd struct {
	RomPath string `arg:"" name:"/path/to/rom" help:"ROM file to run." required:"true" type:"existingfile"`

	Headless bool `name:"headless" help:"Run without opening a window; steps frames as fast as possible."`
	Port     int  `name:"port" help:"Start the debugger RPC/WebSocket server on this port." default:"0"`
	Frames   int  `name:"frames" help:"With --headless, stop after this many frames (0 = run until halted)." default:"0"`
}

type RomInfosCmd struct {
	RomPath string `arg:"" name:"/path/to/rom" type:"existingfile"`
}

type VersionCmd struct{}

const version = "nescore 0.1.0"

func (c *VersionCmd) Run() error {
	fmt.Println(version)
	return nil
}

var kongVars = kong.Vars{
	"log_help": "Enable debug logging for the given comma-separated modules, or \"all\".",
}

func parseArgs(args []string) (kong.Vars, *kong.Context, *CLI) {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("nescore"),
		kong.Description("Cycle-driven NES emulator core."),
		kong.UsageOnError(),
		kongVars,
	)
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(args)
	fatalOnErr(err, "failed to parse command line")
	return kongVars, ctx, &cli
}

// logModMask decodes the --log flag into nlog module masks, mirroring the
// reference CLI's log-module parsing (comma-separated names, plus the
// special "all"/"no" values).
type logModMask nlog.ModuleMask

func (lm *logModMask) Decode(ctx *kong.DecodeContext) error {
	tok := ctx.Scan.Pop()
	var mask nlog.ModuleMask
	nolog := false
	for _, name := range strings.Split(tok.Value.(string), ",") {
		switch name {
		case "all":
			mask = nlog.ModuleMaskAll
		case "no":
			nolog = true
		default:
			mod, ok := nlog.ModuleByName(name)
			if !ok {
				return fmt.Errorf("unknown log module %q", name)
			}
			mask |= mod.Mask()
		}
	}
	if nolog {
		nlog.Disable()
		return nil
	}
	nlog.EnableDebugModules(mask)
	*lm = logModMask(mask)
	return nil
}

func fatalOnErr(err error, format string, args ...any) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "fatal error:\n\t%s: %s\n", fmt.Sprintf(format, args...), err)
	os.Exit(1)
}
