/*
NAME
  calib-check - check a camera calibration against an OpenGL rendering.

DESCRIPTION
  calib-check projects a synthetic cylinder through a camera calibration
  and through the equivalent OpenGL pipeline, reports how far apart the
  two land and draws both over the camera's reference image. The camera
  and cylinder can also be exported as a glTF scene.

  Parameters are read from a config file of space separated key value
  lines. Run with -init to write a default config file.

AUTHORS
  The Australian Ocean Lab (AusOcean)

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean)

  It is free software: you can redistribute it and/or modify them
  under the terms of the GNU General Public License as published by the
  Free Software Foundation, either version 3 of the License, or (at your
  option) any later version.

  It is distributed in the hope that it will be useful, but WITHOUT
  ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
  FITNESS FOR A PARTICULAR PURPOSE. See the GNU General Public License
  for more details.

  You should have received a copy of the GNU General Public License
  in gpl.txt.  If not, see http://www.gnu.org/licenses.
*/

// calib-check verifies a camera calibration by rendering it two ways.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/ausocean/calibtest/calibration"
	"github.com/ausocean/utils/logging"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logging configuration.
const (
	logMaxSize   = 500 // MB
	logMaxBackup = 10
	logMaxAge    = 28 // days
	logSuppress  = true
)

// Input files named in a default config.
const (
	defaultMatrix = "cameramatrix.txt"
	defaultImage  = "luminance.png"
)

func main() {
	configPath := flag.String("config", "calib.conf", "Config file")
	initConfig := flag.Bool("init", false, "Write a default config file and exit")
	logPath := flag.String("log", "calib-check.log", "Log file")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	var logVerbosity = logging.Info
	if *debug {
		logVerbosity = logging.Debug
	}

	// Create lumberjack logger to handle logging to file.
	fileLog := &lumberjack.Logger{
		Filename:   *logPath,
		MaxSize:    logMaxSize,
		MaxBackups: logMaxBackup,
		MaxAge:     logMaxAge,
	}
	log := logging.New(logVerbosity, io.MultiWriter(os.Stderr, fileLog), logSuppress)

	if *initConfig {
		err := writeDefaultConfig(*configPath)
		if err != nil {
			log.Fatal("could not write config", "error", err)
		}
		log.Info("wrote default config", "path", *configPath)
		return
	}

	cfg, err := calibration.ReadConfig(*configPath)
	if err != nil {
		log.Fatal("could not read config", "error", err)
	}
	res, err := calibration.Run(cfg, log)
	if err != nil {
		log.Fatal("calibration check failed", "error", err)
	}
	fmt.Printf("points: %d\nmean residual: %.3g px\nmax residual: %.3g px\n", res.Len(), res.MeanResidual(), res.MaxResidual())
}

// writeDefaultConfig writes a config with default values and conventional
// input file names to path.
func writeDefaultConfig(path string) error {
	cfg := calibration.DefaultConfig()
	cfg.MatrixPath = defaultMatrix
	cfg.ImagePath = defaultImage
	return calibration.WriteConfig(path, cfg)
}
