package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"
	"github.com/spf13/cobra"

	"goproc/config"
	"goproc/process"
	"goproc/process_details"
	"goproc/table"
)

var errNoMatch = errors.New("no matching process")

var log = logger.NewLogger(coloransi.Color(coloransi.ColorPurple, coloransi.ColorOrange, "process_find"))

type enumerator interface {
	process.Finder
	process.Opener
}

type lookupFunc func(pid uint32) (process_details.Details, error)

type options struct {
	configPath string
	pid        uint32
	first      bool
	list       bool
	details    bool
	noColor    bool
}

func newRootCmd(e enumerator, lookup lookupFunc) *cobra.Command {
	var opts options

	root := &cobra.Command{
		Use:   "process_find [name]",
		Short: "Find running processes by name substring or pid and open them with full access",
		Long: "Find running processes by name substring or pid and open them with full access.\n\n" +
			"Matches are listed most recently enumerated first, so --first selects the matching\n" +
			"process the OS reported last, not the lowest pid. The first process in the OS\n" +
			"snapshot is never matched.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, opts, e, lookup)
		},
	}

	flags := root.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Path to a YAML file with default options")
	flags.Uint32VarP(&opts.pid, "pid", "p", 0, "Open this process id instead of searching by name")
	flags.BoolVar(&opts.first, "first", false, "Open only the first match")
	flags.BoolVarP(&opts.list, "list", "l", false, "List snapshot entries without opening handles")
	flags.BoolVarP(&opts.details, "details", "d", false, "Show parent pid, user, start time and executable path")
	flags.BoolVar(&opts.noColor, "no-color", false, "Disable coloured output")

	root.MarkFlagsMutuallyExclusive("pid", "list")
	root.MarkFlagsMutuallyExclusive("pid", "first")

	root.SilenceUsage = true
	root.SilenceErrors = true

	return root
}

func run(cmd *cobra.Command, args []string, opts options, e enumerator, lookup lookupFunc) (err error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if len(args) > 0 {
		cfg.Filter = args[0]
	}
	if flags.Changed("first") {
		cfg.First = opts.first
	}
	if flags.Changed("list") {
		cfg.List = opts.list
	}
	if flags.Changed("details") {
		cfg.Details = opts.details
	}
	color := cfg.ColorEnabled() && !opts.noColor
	out := cmd.OutOrStdout()

	if cfg.List && !flags.Changed("pid") {
		rows, err := e.Processes(cfg.Filter)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			return fmt.Errorf("%w for %q", errNoMatch, cfg.Filter)
		}
		return renderRows(out, rows, cfg.Details, color, lookup)
	}

	var handles []*process.ProcessHandle
	defer func() {
		closeErr := process.CloseAll(handles)
		if closeErr == nil {
			return
		}
		log.Debugln("Failed to close", len(handles), "handles:", closeErr)
		if err == nil {
			err = closeErr
		}
	}()

	switch {
	case flags.Changed("pid"):
		p, ok := e.OpenByID(process.ProcessID(opts.pid))
		if !ok {
			return fmt.Errorf("process %d could not be opened", opts.pid)
		}
		handles = append(handles, p)
	case cfg.First:
		p, ok := e.FindFirstByName(cfg.Filter)
		if !ok {
			return fmt.Errorf("%w for %q", errNoMatch, cfg.Filter)
		}
		handles = append(handles, p)
	default:
		handles, err = e.FindByName(cfg.Filter)
		if err != nil {
			return err
		}
		if len(handles) == 0 {
			return fmt.Errorf("%w for %q", errNoMatch, cfg.Filter)
		}
	}

	return renderHandles(out, handles, cfg.Details, color, lookup)
}

func detailColumns() []table.ColumnSpec {
	return []table.ColumnSpec{
		{Header: "User"},
		{Header: "Started", FormatFunc: table.Paint(coloransi.BrightBlack)},
		{Header: "Uptime", Align: table.AlignRight},
		{Header: "Exe"},
	}
}

func detailCells(pid process.ProcessID, lookup lookupFunc) (ppid string, cells []string) {
	d, err := lookup(uint32(pid))
	if err != nil {
		return "", []string{"", "", "", ""}
	}
	started := ""
	if !d.Started.IsZero() {
		started = d.Started.Format(time.DateTime)
	}
	uptime := ""
	if age := d.Age(time.Now()); age > 0 {
		uptime = age.Truncate(time.Second).String()
	}
	return strconv.FormatUint(uint64(d.ParentPID), 10), []string{d.User, started, uptime, d.Exe}
}

func renderHandles(w io.Writer, handles []*process.ProcessHandle, details, color bool, lookup lookupFunc) error {
	cols := []table.ColumnSpec{
		{Header: "PID", Align: table.AlignRight},
		{Header: "Name", FormatFunc: table.Paint(coloransi.Cyan)},
		{Header: "Handle", Align: table.AlignRight, FormatFunc: table.Paint(coloransi.Yellow)},
	}
	if details {
		cols = append(cols, table.ColumnSpec{Header: "PPID", Align: table.AlignRight})
		cols = append(cols, detailColumns()...)
	}

	t := table.New(cols...)
	t.SetColor(color)
	for _, p := range handles {
		row := []string{
			strconv.FormatUint(uint64(p.PID()), 10),
			p.Name(),
			fmt.Sprintf("0x%X", uint64(p.Handle())),
		}
		if details {
			ppid, cells := detailCells(p.PID(), lookup)
			row = append(row, ppid)
			row = append(row, cells...)
		}
		t.AddRow(row...)
	}
	return t.Render(w)
}

func renderRows(w io.Writer, rows []process.ProcessInfo, details, color bool, lookup lookupFunc) error {
	cols := []table.ColumnSpec{
		{Header: "PID", Align: table.AlignRight},
		{Header: "PPID", Align: table.AlignRight},
		{Header: "Name", FormatFunc: table.Paint(coloransi.Cyan)},
	}
	if details {
		cols = append(cols, detailColumns()...)
	}

	t := table.New(cols...)
	t.SetColor(color)
	for _, r := range rows {
		row := []string{
			strconv.FormatUint(uint64(r.PID), 10),
			strconv.FormatUint(uint64(r.ParentPID), 10),
			r.Name,
		}
		if details {
			_, cells := detailCells(r.PID, lookup)
			row = append(row, cells...)
		}
		t.AddRow(row...)
	}
	return t.Render(w)
}
