package main

import (
	"fmt"
	"strconv"
	"strings"
)

type command struct {
	name    string
	steps   int
	version int
	target  uint
}

func parseCommand(args []string) (command, error) {
	if len(args) == 0 {
		return command{}, errUsage
	}

	cmd := command{name: strings.ToLower(strings.TrimSpace(args[0]))}
	rest := args[1:]
	switch cmd.name {
	case "up", "version":
		return cmd, nil
	case "down":
		steps, err := parseSteps(rest)
		if err != nil {
			return command{}, err
		}
		cmd.steps = steps
	case "force":
		if len(rest) == 0 {
			return command{}, fmt.Errorf("force requires a version argument")
		}
		version, err := parseVersion(rest[0])
		if err != nil {
			return command{}, err
		}
		cmd.version = version
	case "goto", "migrate":
		if len(rest) == 0 {
			return command{}, fmt.Errorf("goto requires a target version argument")
		}
		target, err := parseTarget(rest[0])
		if err != nil {
			return command{}, err
		}
		cmd.name = "goto"
		cmd.target = target
	default:
		return command{}, fmt.Errorf("%w: unknown command %q", errUsage, cmd.name)
	}
	return cmd, nil
}

func parseSteps(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}

	steps, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		return 0, fmt.Errorf("invalid down steps %q: %w", args[0], err)
	}
	if steps <= 0 {
		return 0, fmt.Errorf("down steps must be > 0")
	}
	return steps, nil
}

func parseVersion(raw string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid version %q: %w", raw, err)
	}
	if value < 0 {
		return 0, fmt.Errorf("version must be >= 0")
	}
	return value, nil
}

func parseTarget(raw string) (uint, error) {
	value, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 0)
	if err != nil {
		return 0, fmt.Errorf("invalid target version %q: %w", raw, err)
	}
	return uint(value), nil
}
