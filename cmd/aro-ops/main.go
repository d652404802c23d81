package main

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/finastra-engineering/aro-ops/pkg/certs"
	utillog "github.com/finastra-engineering/aro-ops/pkg/util/log"
)

var (
	gitCommit = "unknown"
)

func usage() {
	fmt.Fprint(flag.CommandLine.Output(), "usage: \n")
	fmt.Fprintf(flag.CommandLine.Output(), "       %s patch-certificates\n", os.Args[0])
	fmt.Fprintf(flag.CommandLine.Output(), "       %s move-to-infra\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()

	ctx := context.Background()
	log := utillog.GetLogger()

	log.Printf("starting, git commit %s", gitCommit)

	var err error
	switch strings.ToLower(flag.Arg(0)) {
	case "patch-certificates":
		checkArgs(1)
		err = patchCertificates(ctx, log)
	case "move-to-infra":
		checkArgs(1)
		err = moveToInfra(ctx, log)
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		if certs.IsValidationError(err) {
			log.Error(err)
			os.Exit(2)
		}
		log.Fatal(err)
	}
}

func checkArgs(required int) {
	if len(flag.Args()) != required {
		usage()
		os.Exit(2)
	}
}
