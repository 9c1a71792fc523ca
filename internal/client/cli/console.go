package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dmitrijs2005/focuslock/internal/client/agent"
	"github.com/dmitrijs2005/focuslock/internal/client/client"
	"github.com/dmitrijs2005/focuslock/internal/client/models"
	"github.com/dmitrijs2005/focuslock/internal/client/reconciler"
	"github.com/dmitrijs2005/focuslock/internal/client/services"
)

// Reconciler is what the console needs from *reconciler.Reconciler.
type Reconciler interface {
	Run(ctx context.Context) (reconciler.Report, error)
	LastRun() time.Time
}

type Console struct {
	agent      agent.Agent
	reconciler Reconciler
	devices    services.DeviceService
	scan       services.ScanService
	presets    services.PresetService
}

func NewConsole(a agent.Agent, r Reconciler, devices services.DeviceService, scan services.ScanService, presets services.PresetService) *Console {
	return &Console{agent: a, reconciler: r, devices: devices, scan: scan, presets: presets}
}

// Run serves commands read from in until it is exhausted or ctx is done.
func (c *Console) Run(ctx context.Context, in io.Reader) {
	printlnFn("focuslock agent console (type 'help' for commands)")
	runREPL(ctx, c, bufio.NewScanner(in))
}

func (c *Console) Status(ctx context.Context) error {
	deviceID, err := c.devices.DeviceID(ctx)
	switch {
	case errors.Is(err, services.ErrNotRegistered):
		deviceID = "(not registered)"
	case err != nil:
		printlnFn("Error:", err)
		return err
	}

	active, err := c.agent.IsActive(ctx)
	if err != nil {
		printlnFn("Error:", err)
		return err
	}

	printlnFn("Device:", deviceID)
	if active {
		remaining, err := c.agent.RemainingDuration(ctx)
		if err != nil {
			printlnFn("Error:", err)
			return err
		}
		printlnFn("Restriction active, remaining:", remaining.Round(time.Second))
	} else {
		printlnFn("No restriction active")
	}

	if last := c.reconciler.LastRun(); last.IsZero() {
		printlnFn("Last sync: never")
	} else {
		printlnFn("Last sync:", last.Format(time.DateTime))
	}
	return nil
}

func (c *Console) Scan(ctx context.Context, payload string) error {
	res, err := c.scan.Scan(ctx, payload)
	if err != nil {
		var redeemErr *client.RedeemError
		if errors.As(err, &redeemErr) {
			printlnFn("Token refused:", redeemErr.Error())
		} else {
			printlnFn("Error:", err)
		}
		return err
	}

	switch {
	case res.Immediate:
		printlnFn(fmt.Sprintf("%s started for %s", res.Policy.Name, res.Duration))
	default:
		printlnFn(fmt.Sprintf("%s scheduled as %s", res.Policy.Name, res.ScheduleID))
	}
	return nil
}

func (c *Console) Sync(ctx context.Context) error {
	rep, err := c.reconciler.Run(ctx)
	if err != nil {
		printlnFn("Error:", err)
		return err
	}
	printlnFn(fmt.Sprintf("Synced: %d schedules, %d scheduled, %d cancelled, %d failed",
		rep.Merged, rep.Scheduled, rep.Cancelled, rep.Failed))
	for _, o := range rep.CarriedForward {
		printlnFn("Using cached", string(o), "schedules")
	}
	return nil
}

func (c *Console) Presets(ctx context.Context) error {
	list, err := c.presets.List(ctx)
	if err != nil {
		printlnFn("Error:", err)
		return err
	}
	if len(list) == 0 {
		printlnFn("No presets")
		return nil
	}
	for _, p := range list {
		printlnFn(formatPreset(p))
	}
	return nil
}

func formatPreset(p *models.Preset) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s  [%s]", p.ID, p.Name, p.Kind)
	if p.Kind == models.PresetInstant {
		fmt.Fprintf(&b, " %dm", p.DurationMinutes)
	} else {
		fmt.Fprintf(&b, " %s-%s %s", p.Start, p.End, strings.Join(p.Days, ""))
	}
	if !p.Active {
		b.WriteString(" (inactive)")
	}
	return b.String()
}

func (c *Console) Start(ctx context.Context, presetID string) error {
	if err := c.presets.Start(ctx, presetID); err != nil {
		printlnFn("Error:", err)
		return err
	}
	printlnFn("Started", presetID)
	return nil
}

func (c *Console) Stop(ctx context.Context) error {
	ids, err := c.agent.StopAllActive(ctx)
	if err != nil {
		printlnFn("Error:", err)
		return err
	}
	if len(ids) == 0 {
		printlnFn("Nothing to stop")
		return nil
	}
	printlnFn("Stopped:", strings.Join(ids, ", "))
	return nil
}
