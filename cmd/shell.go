package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/blocksim/blocksim/sim"
	"github.com/blocksim/blocksim/sim/catalog"
)

// shellCmd drives one simulator interactively, one command per line
var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Interactive shell over a fresh disk (create, delete, read, write, map, ...)",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			logrus.Fatalf("Invalid simulator configuration: %v", err)
		}
		s, err := sim.NewSimulator(cfg)
		if err != nil {
			logrus.Fatalf("Failed to create simulator: %v", err)
		}
		sh := NewShell(s, cmd.OutOrStdout(), mapWidthOrDefault())
		fmt.Fprintf(cmd.OutOrStdout(), "blocksim: %d blocks, %s allocation. Type 'help' for commands.\n",
			cfg.Capacity, cfg.Strategy)
		if err := sh.Run(cmd.InOrStdin()); err != nil {
			logrus.Fatalf("Shell input failed: %v", err)
		}
	},
}

const shellHelp = `Commands:
  create NAME SIZE     allocate SIZE blocks for a new file
  delete NAME          free every block of a file
  read NAME            print the block tags of a file in file order
  write NAME TAG...    overwrite the block tags (one per block)
  ls                   list files and their layouts
  map                  draw the disk
  stats                print metrics and fragmentation
  save PATH            write the file catalog (name,size) as CSV
  load PATH            create every file listed in a CSV catalog
  help                 show this text
  exit                 leave the shell`

// Shell is a line-oriented front end over one simulator. It redraws the disk after
// every successful create, delete and load.
type Shell struct {
	sim   *sim.Simulator
	out   io.Writer
	width int
}

// NewShell creates a shell writing to out.
func NewShell(s *sim.Simulator, out io.Writer, width int) *Shell {
	return &Shell{sim: s, out: out, width: width}
}

// Run reads commands from in until EOF or "exit".
func (sh *Shell) Run(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(sh.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(sh.out)
			return scanner.Err()
		}
		if quit := sh.Exec(scanner.Text()); quit {
			return nil
		}
	}
}

// Exec runs one command line. It returns true when the shell should exit.
func (sh *Shell) Exec(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]
	switch cmd {
	case "exit", "quit":
		return true
	case "help":
		fmt.Fprintln(sh.out, shellHelp)
	case "create":
		sh.create(args)
	case "delete", "rm":
		if !sh.needArgs(cmd, args, 1) {
			return false
		}
		if err := sh.sim.DeleteFile(args[0]); err != nil {
			sh.fail(err)
			return false
		}
		fmt.Fprintf(sh.out, "File '%s' deleted successfully.\n", args[0])
		sh.redraw()
	case "read":
		if !sh.needArgs(cmd, args, 1) {
			return false
		}
		data, err := sh.sim.ReadFile(args[0])
		if err != nil {
			sh.fail(err)
			return false
		}
		fmt.Fprintln(sh.out, strings.Join(data, " "))
	case "write":
		if !sh.needArgs(cmd, args, 2) {
			return false
		}
		if err := sh.sim.WriteFile(args[0], args[1:]); err != nil {
			sh.fail(err)
			return false
		}
		fmt.Fprintf(sh.out, "File '%s' written.\n", args[0])
	case "ls":
		files := sh.sim.Files()
		if len(files) == 0 {
			fmt.Fprintln(sh.out, "(no files)")
		}
		for _, f := range files {
			fmt.Fprintf(sh.out, "%-16s %4d blocks  %s\n", f.Name, f.Size, f.Layout)
		}
	case "map":
		sh.redraw()
	case "stats":
		sh.sim.Metrics().Print(sh.out, sh.sim.Disk(), sh.sim.Config().BlockSize)
	case "save":
		if !sh.needArgs(cmd, args, 1) {
			return false
		}
		if err := catalog.FromSimulator(sh.sim).SaveFile(args[0]); err != nil {
			fmt.Fprintf(sh.out, "error: %v\n", err)
			return false
		}
		fmt.Fprintf(sh.out, "Saved %d files to %s.\n", len(sh.sim.Files()), args[0])
	case "load":
		sh.load(args)
	default:
		fmt.Fprintf(sh.out, "unknown command %q (try 'help')\n", cmd)
	}
	return false
}

func (sh *Shell) create(args []string) {
	if !sh.needArgs("create", args, 2) {
		return
	}
	size, err := strconv.Atoi(args[1])
	if err != nil {
		fmt.Fprintf(sh.out, "error: size must be a whole number of blocks, got %q\n", args[1])
		return
	}
	layout, err := sh.sim.CreateFile(args[0], size)
	if err != nil {
		sh.fail(err)
		return
	}
	fmt.Fprintf(sh.out, "File '%s' created successfully at %s.\n", args[0], layout)
	sh.redraw()
}

func (sh *Shell) load(args []string) {
	if !sh.needArgs("load", args, 1) {
		return
	}
	cat, err := catalog.LoadFile(args[0])
	if err != nil {
		fmt.Fprintf(sh.out, "error: %v\n", err)
		return
	}
	restored, failures := cat.Restore(sh.sim)
	fmt.Fprintf(sh.out, "Restored %d of %d files.\n", restored, len(cat.Records))
	for _, f := range failures {
		sh.fail(f.Err)
	}
	sh.redraw()
}

func (sh *Shell) needArgs(cmd string, args []string, n int) bool {
	if len(args) < n {
		fmt.Fprintf(sh.out, "usage: %s (see 'help')\n", cmd)
		return false
	}
	return true
}

func (sh *Shell) fail(err error) {
	fmt.Fprintf(sh.out, "%s: %v\n", sim.FailureKind(err), err)
}

func (sh *Shell) redraw() {
	RenderMap(sh.out, sh.sim.Snapshot(), sh.width)
}
