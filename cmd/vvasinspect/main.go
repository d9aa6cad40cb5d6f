/*
DESCRIPTION
  vvasinspect feeds a raw H.264/H.265 elementary-stream file through the
  access-unit assembler and prints each emitted access unit and decoder
  configuration change.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package vvasinspect is a command-line tool for inspecting the access
// units and decoder configurations an elementary-stream file produces.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ausocean/vvascore/au"
	"github.com/ausocean/vvascore/codec/codecutil"
	"github.com/ausocean/vvascore/logging"
	"github.com/ausocean/vvascore/vvaserr"
)

// Current software version.
const version = "v1.0.0"

// Read chunk size used to feed the assembler, chosen to exercise the
// multi-call NeedMoreData path on typical elementary streams.
const readChunkSize = 64 * 1024

// Logging configuration.
const (
	logMaxSize   = 50 // MB
	logMaxBackup = 5
	logMaxAge    = 28 // days
	pkg          = "vvasinspect: "
)

func main() {
	showVersion := flag.Bool("version", false, "show version")
	codecFlag := flag.String("codec", "h264", "stream codec: h264 or h265")
	logLevel := flag.Int("log-level", int(logging.Warning), "log verbosity: 0=Error 1=Warning 2=Info 3=Debug")
	logPath := flag.String("log-path", "", "log file path; empty logs to stderr/system log")
	flag.Parse()

	if *showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	var out io.Writer = os.Stderr
	if *logPath != "" {
		out = &lumberjack.Logger{Filename: *logPath, MaxSize: logMaxSize, MaxBackups: logMaxBackup, MaxAge: logMaxAge}
	}
	log := logging.New(logging.Level(*logLevel), out)

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: vvasinspect [flags] <elementary-stream-file>")
		os.Exit(2)
	}

	codec, err := parseCodec(*codecFlag)
	if err != nil {
		log.Error(pkg+"bad codec: %v", err)
		os.Exit(2)
	}

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		log.Error(pkg+"could not open input file: %v", err)
		os.Exit(1)
	}
	defer f.Close()

	if err := inspect(f, codec, logging.Level(*logLevel)); err != nil {
		log.Error(pkg+"inspection failed: %v", err)
		os.Exit(1)
	}
}

func parseCodec(s string) (au.Codec, error) {
	switch s {
	case "h264":
		return au.H264, nil
	case "h265":
		return au.H265, nil
	default:
		return 0, fmt.Errorf("unrecognised codec %q", s)
	}
}

// inspect drives the assembler to completion over r, printing every
// emitted access unit and decoder configuration change. r is read through
// a codecutil.ByteScanner so the file is pulled in fixed-size chunks
// regardless of the underlying reader's own buffering.
func inspect(r io.Reader, codec au.Codec, level logging.Level) error {
	state := au.Open(codec, level)
	defer au.Close(state)

	scanner := codecutil.NewByteScanner(r, make([]byte, readChunkSize))
	auCount, cfgCount := 0, 0

	for {
		chunk, eof, rerr := readChunk(scanner, readChunkSize)
		if rerr != nil {
			return rerr
		}

		for {
			outcome, err := state.GetAU(chunk, len(chunk), eof)
			chunk = nil // Subsequent GetAU calls in this inner loop carry no new input.
			if err != nil {
				fmt.Printf("parse error: %v\n", err)
			}

			if outcome.Config != nil {
				cfgCount++
				fmt.Printf("config #%d: %+v\n", cfgCount, *outcome.Config)
			}
			if len(outcome.AU) > 0 {
				auCount++
				fmt.Printf("AU #%d: %d bytes\n", auCount, len(outcome.AU))
			}

			if outcome.Code == vvaserr.Eos {
				fmt.Printf("done: %d access units, %d configuration changes\n", auCount, cfgCount)
				return nil
			}
			if outcome.Code == vvaserr.NeedMoreData {
				break
			}
		}
	}
}

// readChunk pulls up to n bytes from s one byte at a time, reporting eof
// once the underlying reader is exhausted.
func readChunk(s *codecutil.ByteScanner, n int) (chunk []byte, eof bool, err error) {
	chunk = make([]byte, 0, n)
	for len(chunk) < n {
		b, rerr := s.ReadByte()
		if rerr != nil {
			if rerr == io.EOF {
				return chunk, true, nil
			}
			return nil, false, rerr
		}
		chunk = append(chunk, b)
	}
	return chunk, false, nil
}
