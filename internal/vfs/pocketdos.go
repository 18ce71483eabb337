package vfs

// Program identifiers of the stock executables.
const (
	ProgramDemo      = "demo"
	ProgramElite     = "elite"
	ProgramPinball   = "pinball"
	ProgramTicTacToe = "tictactoe"
	ProgramCircle    = "circle"
)

// GamesDir is the fallback directory searched by RUN.
const GamesDir = "GAMES"

const (
	autoexecBat = "@ECHO OFF\r\nPROMPT $P$G\r\nPATH C:\\DOS;C:\\UTILS\r\n"
	configSys   = "DEVICE=HIMEM.SYS\r\nDOS=HIGH,UMB\r\nFILES=30\r\nBUFFERS=20\r\n"
	readmeTxt   = "Welcome to Pocket DOS (sim).\r\n\r\n" +
		"Try commands: DIR, CLS, TYPE README.TXT, HELP, VER, TIME, DATE, CD NOTES, TYPE TODO.TXT, RUN DEMO, BEEP, TESTS.\r\n"
	todoTxt = "- Finish the space trader prototype\r\n" +
		"- Record DOS simulator demo\r\n" +
		"- Buy floppies (just kidding)\r\n"
	commandCom = "This file does nothing here, but it looks legit.\r\n"
)

// PocketDOS returns the stock C: drive.
func PocketDOS() *FS {
	notes := mustDir(
		Child{"TODO.TXT", &File{Content: todoTxt}},
	)
	games := mustDir(
		Child{"DEMO.EXE", &Executable{DisplayName: "DEMO", ProgramID: ProgramDemo}},
		Child{"TICTACTO.EXE", &Executable{DisplayName: "TICTACTO", ProgramID: ProgramTicTacToe}},
		Child{"CIRCLE.EXE", &Executable{DisplayName: "CIRCLE", ProgramID: ProgramCircle}},
	)
	dos := mustDir(
		Child{"COMMAND.COM", &File{Content: commandCom}},
	)
	root := mustDir(
		Child{"AUTOEXEC.BAT", &File{Content: autoexecBat}},
		Child{"CONFIG.SYS", &File{Content: configSys}},
		Child{"README.TXT", &File{Content: readmeTxt}},
		Child{"ELITE.EXE", &Executable{DisplayName: "ELITE", ProgramID: ProgramElite}},
		Child{"PINBALL.EXE", &Executable{DisplayName: "PINBALL", ProgramID: ProgramPinball}},
		Child{"NOTES", notes},
		Child{GamesDir, games},
		Child{"DOS", dos},
	)
	fs, err := New("C:", root)
	if err != nil {
		panic(err)
	}
	return fs
}

func mustDir(children ...Child) *Directory {
	d, err := NewDirectory(children...)
	if err != nil {
		panic(err)
	}
	return d
}
