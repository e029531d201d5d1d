package main

import (
	"errors"
	"fmt"
	"strconv"
)

var errNothingToUpdate = errors.New("nothing to update: pass at least one field flag")

func setString(changed bool, dst **string, v string) {
	if changed {
		*dst = &v
	}
}

func setFloat(changed bool, dst **float64, v float64) {
	if changed {
		*dst = &v
	}
}

func setInt(changed bool, dst **int, v int) {
	if changed {
		*dst = &v
	}
}

func parseOnOff(arg string) (bool, error) {
	switch arg {
	case "on", "true", "1":
		return true, nil
	case "off", "false", "0":
		return false, nil
	}
	return false, fmt.Errorf("%w: expected on or off, got %q", errUsage, arg)
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("%w: id must be a number, got %q", errUsage, arg)
	}
	return id, nil
}

func setBool(changed bool, dst **bool, v bool) {
	if changed {
		*dst = &v
	}
}
