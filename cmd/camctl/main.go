package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"camsettings/internal/config"
	"camsettings/internal/logger"
	"camsettings/internal/panel"
	"camsettings/internal/service/device"
)

func main() {
	cfg := config.Load()

	flag.StringVar(&cfg.DeviceURL, "device", cfg.DeviceURL, "Camera base URL")
	flag.StringVar(&cfg.DeviceUser, "user", cfg.DeviceUser, "Camera HTTP user")
	flag.StringVar(&cfg.DevicePassword, "password", cfg.DevicePassword, "Camera HTTP password")
	timeout := flag.Int("timeout", cfg.DeviceTimeoutSeconds, "Request timeout in seconds (0 = none)")
	flag.Usage = usage
	flag.Parse()

	cfg.DeviceTimeout = time.Duration(*timeout) * time.Second

	if err := run(context.Background(), cfg, flag.Args(), os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "camctl: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage:
  camctl [flags] get
  camctl [flags] save KEY=VALUE ...

Checkbox keys take on/off (or yes/no, true/false); SENSITIVITY,
SOUND_SENSITIVITY and CRUISE take the raw value. Changes are applied in
order with the same motion/AI exclusivity as the settings page.

Flags:
`)
	flag.PrintDefaults()
}

func run(ctx context.Context, cfg *config.Config, args []string, out io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("missing command (get or save)")
	}

	log := logger.NewWriter(os.Stderr)
	p := panel.New(panel.DefaultForm(), device.NewClient(cfg, log), log)

	switch args[0] {
	case "get":
		if _, err := p.Load(ctx); err != nil {
			return err
		}
		return printForm(out, p.Snapshot())

	case "save":
		if len(args) < 2 {
			return fmt.Errorf("save needs at least one KEY=VALUE")
		}
		if _, err := p.Load(ctx); err != nil {
			return err
		}
		for _, a := range args[1:] {
			if err := apply(p, a); err != nil {
				return err
			}
		}
		result, err := p.Save(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Saved: %s\n", result.Query)
		return nil

	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

// apply performs one KEY=VALUE change on the panel.
func apply(p *panel.Panel, assignment string) error {
	key, value, ok := strings.Cut(assignment, "=")
	if !ok || key == "" {
		return fmt.Errorf("invalid change %q, want KEY=VALUE", assignment)
	}
	key = strings.ToUpper(key)

	if p.Snapshot().Select(key) != nil {
		return p.SetSelect(key, value)
	}

	checked, err := parseSwitch(value)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	return p.SetChecked(key, checked)
}

func parseSwitch(v string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "on", "yes", "true", "1":
		return true, nil
	case "off", "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid switch value %q", v)
	}
}

func printForm(out io.Writer, form *panel.Form) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(form)
}
