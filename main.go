package main

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/mksdboot/mksdboot/pkg/cli"
)

func main() {
	if err := cli.Run(os.Args); err != nil {
		logrus.Fatalf("mksdboot: %v", err)
	}
}
