package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	"broomicon/badge"
	"broomicon/doctor"
	"broomicon/log"
)

var version = "dev"

// outputDir is where the icons land, relative to the working directory.
const outputDir = "icons"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("broomicon", flag.ContinueOnError)
	logPathFlag := fs.String("logpath", "", "log directory path (default: OS-specific location, use ./ for current dir)")
	versionFlag := fs.Bool("version", false, "Print version and exit")
	doctorFlag := fs.Bool("doctor", false, "Verify previously generated icons and exit")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *versionFlag {
		fmt.Printf("broomicon %s\n", version)
		return 0
	}

	// Resolve log directory early
	logPath, err := log.ResolveDir(*logPathFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to resolve log directory: %v\n", err)
		return 1
	}
	log.SetDir(logPath)

	if err := log.EnsureDir(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not create log directory: %v\n", err)
	}

	crashPath := filepath.Join(log.Dir(), "crash_log.txt")
	crashFile, err := os.OpenFile(crashPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err == nil {
		defer crashFile.Close()
		fmt.Fprintf(crashFile, "\n=== Session %s [pid=%d] ===\n", time.Now().Format("2006-01-02 15:04:05"), os.Getpid())
		debug.SetCrashOutput(crashFile, debug.CrashOptions{})
	}

	if err := log.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not init logging: %v\n", err)
	}
	defer log.Close()

	if *doctorFlag {
		return doctor.Run(os.Stdout, outputDir, badge.Sizes)
	}

	log.RunStart(version, outputDir, badge.Sizes)

	rep := newReporter(os.Stdout)
	results, err := generateIcons(outputDir, badge.Sizes, rep.created)
	if err != nil {
		log.Errorf("generation failed: %v", err)
		rep.failed(err)
		return 1
	}
	log.RunEnd(len(results))
	rep.done()
	return 0
}
