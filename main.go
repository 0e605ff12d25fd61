// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad
//
// gwts - 9X IR command codec and show assembler

package main

import (
	"os"

	"github.com/Thermoquad/gwts/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
