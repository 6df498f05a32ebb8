package main

import (
	"fmt"

	"github.com/fatih/color"
	flag "github.com/spf13/pflag"

	"github.com/lanikai/fakertc/internal/signaling"
)

var (
	flagPort     int
	flagConfig   string
	flagLogLevel string
	flagHelp     bool
	flagVersion  bool
)

func init() {
	flag.IntVarP(&flagPort, "port", "p", signaling.DefaultPort, "HTTP port on which to listen")
	flag.StringVarP(&flagConfig, "config", "c", "", "JSON signaling configuration file")
	flag.StringVarP(&flagLogLevel, "log-level", "l", "", "Log level directives, e.g. debug or rtc=debug,signaling=info")

	flag.BoolVarP(&flagHelp, "help", "h", false, "Print usage information and exit")
	flag.BoolVarP(&flagVersion, "version", "v", false, "Print version information and exit")
}

const helpString = `Simulated WebRTC peer for signaling tests

Usage: fakertcd [OPTION]...

Signaling:
  -p, --port=NUM         HTTP port on which to listen (default: 8000)
  -c, --config=FILE      JSON configuration, with "port" and "rtcConfiguration"

Logging:
  -l, --log-level=LIST   Comma-separated level directives, either LEVEL or
                         TAG=LEVEL (default: $LOGLEVEL, else info)

Miscellaneous:
  -h, --help             Prints this help message and exits
  -v, --version          Prints version information and exits

Connect a websocket to ws://HOST:PORT/ws and send {"type":"offer","sdp":...}.`

// Help information is printed and program exits
func help() {
	r := color.New(color.FgRed)
	y := color.New(color.FgYellow)
	b := color.New(color.FgCyan)

	//   __       _                _
	//  / _| __ _| | _____ _ __ __| |_ ___
	// | |_ / _` | |/ / _ \ '__/ _` __/ __|
	// |  _| (_| |   <  __/ | | (_| |_ (__
	// |_|  \__,_|_|\_\___|_|  \__,_\__\___|

	// Line 1
	r.Printf("  __ ")
	y.Printf("      _ ")
	b.Printf("       ")
	r.Printf("        ")
	y.Println(" _     ")

	// Line 2
	r.Printf(" / _|")
	y.Printf(" __ _| | _")
	b.Printf("____ ")
	r.Printf("_ __ __")
	y.Println("| |_ ___ ")

	// Line 3
	r.Printf("| |_ ")
	y.Printf("/ _` | |/ /")
	b.Printf(" _ \\ ")
	r.Printf("'__/ _`")
	y.Println(" __/ __|")

	// Line 4
	r.Printf("|  _|")
	y.Printf(" (_| |   < ")
	b.Printf(" __/ ")
	r.Printf("| | (_| ")
	y.Println("|_ (__ ")

	// Line 5
	r.Printf("|_|  ")
	y.Printf("\\__,_|_|\\_\\")
	b.Printf("___|")
	r.Printf("_|  \\__,_")
	y.Println("\\__\\___|")

	fmt.Println(helpString)
}

// version displays information and exits successfully (GNU convention)
func version() {
	fmt.Println("fakertcd", GitRevisionId)
	fmt.Println("Copyright 2019 Lanikai Labs LLC. All rights reserved.")
}
