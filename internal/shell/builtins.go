package shell

import (
	"errors"
	"strings"

	"github.com/joeycumines/pocket-dos/internal/vfs"
)

// Builtin is an internal command.
type Builtin struct {
	Name  string
	Usage string
	Run   func(c *Call)
}

func builtins() map[string]Builtin {
	table := []Builtin{
		{Name: "CLS", Usage: "clear screen", Run: cmdCls},
		{Name: "DIR", Usage: "list files and folders", Run: cmdDir},
		{Name: "CD", Usage: "change directory", Run: cmdCd},
		{Name: "TYPE", Usage: "print a text file", Run: cmdType},
		{Name: "ECHO", Usage: "output text", Run: cmdEcho},
		{Name: "HELP", Usage: "show command reference", Run: cmdHelp},
		{Name: "VER", Usage: "show version", Run: cmdVer},
		{Name: "TIME", Usage: "show time", Run: cmdTime},
		{Name: "DATE", Usage: "show date", Run: cmdDate},
		{Name: "MEM", Usage: "show memory", Run: cmdMem},
		{Name: "RUN", Usage: "run a program", Run: cmdRun},
		{Name: "ELITE", Usage: "play Elite demo", Run: launcher(vfs.ProgramElite)},
		{Name: "PINBALL", Usage: "play pinball game", Run: launcher(vfs.ProgramPinball)},
		{Name: "BEEP", Usage: "beep the PC speaker", Run: cmdBeep},
		{Name: "REBOOT", Usage: "reboot the simulated PC", Run: cmdReboot},
		{Name: "TESTS", Usage: "run built-in self tests", Run: cmdTests},
	}
	m := make(map[string]Builtin, len(table))
	for _, b := range table {
		m[b.Name] = b
	}
	return m
}

var helpText = []string{
	"\nPOCKET DOS (sim) Help",
	"----------------------",
	" DIR                list files and folders",
	` CD <DIR>          change directory  (use "CD .." to go up)`,
	" TYPE <FILE>       print a text file",
	" ECHO <TEXT>       output text",
	" CLS               clear screen",
	" VER | DATE | TIME | MEM",
	" RUN <NAME>        run a program (e.g., RUN DEMO)",
	" ELITE             play Elite demo",
	" PINBALL           play pinball game",
	" BEEP              beep the PC speaker",
	" TESTS             run built-in self tests",
	" REBOOT            reboot the simulated PC",
}

func cmdCls(c *Call) { c.Session.Output = "" }

func cmdDir(c *Call) {
	dir, err := c.in.fs.Dir(c.Session.Cwd)
	if err != nil {
		c.Println("The system cannot find the path specified.")
		return
	}
	c.Println("\n Volume in drive C is " + c.in.label)
	c.Println(" Directory of " + vfs.FormatPath(c.Session.Cwd) + `\`)
	c.Println("")
	stamp := " " + c.in.stamp.Date + "  " + c.in.stamp.Time
	for _, e := range dir.List() {
		if e.Kind == vfs.KindDirectory {
			c.Println(stamp + "  <DIR> " + " " + e.Name)
		} else {
			c.Println(stamp + "         " + " " + e.Name)
		}
	}
}

func cmdCd(c *Call) {
	if len(c.Args) == 0 {
		c.Println(vfs.FormatPath(c.Session.Cwd))
		return
	}
	arg := c.Args[0]
	if arg == ".." {
		cdUp(c)
		return
	}
	dir, err := c.in.fs.Dir(c.Session.Cwd)
	if err == nil {
		if n, ok := dir.Lookup(arg); ok && n.Kind() == vfs.KindDirectory {
			c.Session.Cwd = append(c.Session.Cwd, arg)
			return
		}
	}
	c.Println("The system cannot find the path specified.")
}

func cdUp(c *Call) {
	if len(c.Session.Cwd) > 1 {
		c.Session.Cwd = c.Session.Cwd[:len(c.Session.Cwd)-1]
		return
	}
	c.Println("Already at root.")
}

func cmdType(c *Call) {
	if c.Rest == "" {
		c.Println("File name required.")
		return
	}
	n, err := c.in.fs.Resolve(c.Rest, c.Session.Cwd)
	if errors.Is(err, vfs.ErrNotFound) || n == nil {
		c.Println("File not found.")
		return
	}
	f, ok := n.(*vfs.File)
	if !ok {
		c.Println("Cannot TYPE this item.")
		return
	}
	c.Println("\n" + strings.ReplaceAll(f.Content, "\r\n", "\n"))
}

func cmdEcho(c *Call) { c.Println(c.Rest) }

func cmdHelp(c *Call) {
	for _, line := range helpText {
		c.Println(line)
	}
}

func cmdVer(c *Call) { c.Println("MS-DOS Version 6.22 (sim)") }

func cmdTime(c *Call) { c.Println("Current time: " + c.in.stamp.Time) }

func cmdDate(c *Call) { c.Println("Current date: " + c.in.stamp.Date) }

func cmdMem(c *Call) {
	c.Println("655,360 bytes total conventional memory")
	c.Println("615,000 bytes free (simulated)")
}

func cmdRun(c *Call) {
	if len(c.Args) == 0 {
		c.Println("Specify program name.")
		return
	}
	if !c.in.runByName(c, upper(strings.Join(c.Args, " "))) {
		c.Println("This program cannot be run in this DOS box.")
	}
}

func launcher(programID string) func(*Call) {
	return func(c *Call) { c.in.launch(c, "", programID, false) }
}

func cmdBeep(c *Call) {
	c.Beep(880, 120)
	c.Println("Beep!")
}

func cmdReboot(c *Call) {
	c.in.logger.Info("shell reboot requested")
	c.setEffect(Effect{Kind: EffectReboot})
}

func cmdTests(c *Call) {
	c.Println(c.in.RunSelfChecks().Summary())
}
