package panel

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"camsettings/internal/logger"
	"camsettings/internal/model"
)

// Status texts shown next to the form.
const (
	StatusLoading   = "Loading..."
	StatusSaving    = "Saving..."
	StatusSaved     = "Saved"
	StatusSaveError = "Error while saving"
)

// ErrUnknownControl is returned when a change targets a key the form does not bind.
var ErrUnknownControl = errors.New("unknown control")

// Device reads and writes the camera configuration.
type Device interface {
	FetchConfigs(ctx context.Context) (model.ConfigMap, error)
	// SaveConfigs returns the query string it sent, also on failure.
	SaveConfigs(ctx context.Context, configs model.ConfigMap) (string, error)
}

// SaveResult describes what a save collected and what reached the device.
type SaveResult struct {
	Configs model.ConfigMap `json:"configs"`
	Query   string          `json:"query"`
}

// Panel keeps a Form in sync with the camera configuration.
type Panel struct {
	form   *Form
	device Device
	logger *logger.Logger

	// Bound once from form; nil when the form lacks the control.
	motion       *Checkbox
	aiDetections []*Checkbox

	// Called after the form enters a pending state, before the device call.
	onChange func()

	// Guards form and onChange. Device calls run unlocked.
	mu sync.Mutex
}

// New binds the controls of form and returns a Panel driving them.
func New(form *Form, device Device, logger *logger.Logger) *Panel {
	p := &Panel{
		form:   form,
		device: device,
		logger: logger,
		motion: form.Checkbox(model.KeyMotionDetection),
	}
	for _, key := range model.AIDetectionKeys {
		if c := form.Checkbox(key); c != nil {
			p.aiDetections = append(p.aiDetections, c)
		}
	}
	return p
}

// OnChange registers fn to run whenever Load or Save has set its pending
// status and is about to contact the device. fn runs without the panel lock
// held, so it may call Snapshot.
func (p *Panel) OnChange(fn func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onChange = fn
}

// Load fetches the configuration and reflects it into the form. On failure
// the loading status keeps reading "Loading...".
func (p *Panel) Load(ctx context.Context) (model.ConfigMap, error) {
	p.mu.Lock()
	p.form.LoadingStatus = StatusLoading
	onChange := p.onChange
	p.mu.Unlock()
	if onChange != nil {
		onChange()
	}

	configs, err := p.device.FetchConfigs(ctx)
	if err != nil {
		p.logger.Error("Failed to load camera configuration: %v", err)
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.form.LoadingStatus = ""
	for key, value := range configs {
		p.applyValue(key, value)
	}
	p.applyFirmwareRows(configs.IsFirmware12())

	// No source control after a load, so this leaves the loaded state untouched.
	p.aiDetectionChanged(nil)

	p.logger.Info("Loaded %d camera configuration values", len(configs))
	return configs, nil
}

// applyValue writes one configuration value into its control. Enum keys go to
// the select; when the form binds the key to a checkbox instead, the checkbox
// takes it. Unbound keys are ignored.
func (p *Panel) applyValue(key, value string) {
	if model.IsEnumKey(key) {
		if s := p.form.Select(key); s != nil {
			s.Value = value
			return
		}
	}
	if c := p.form.Checkbox(key); c != nil {
		c.Checked = value == model.Yes
	}
}

func (p *Panel) applyFirmwareRows(fw12 bool) {
	for _, r := range p.form.RowsByClass(ClassFirmware12) {
		r.Visible = fw12
	}
	for _, r := range p.form.RowsByClass(ClassNoFirmware12) {
		r.Visible = !fw12
	}
}

// Save collects the form into a ConfigMap and writes it to the device.
func (p *Panel) Save(ctx context.Context) (SaveResult, error) {
	p.mu.Lock()
	p.form.SaveStatus = StatusSaving
	configs := p.collect()
	onChange := p.onChange
	p.mu.Unlock()
	if onChange != nil {
		onChange()
	}

	query, err := p.device.SaveConfigs(ctx, configs)
	result := SaveResult{Configs: configs, Query: query}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err != nil {
		p.form.SaveStatus = StatusSaveError
		p.logger.Error("Failed to save camera configuration: %v", err)
		return result, err
	}
	p.form.SaveStatus = StatusSaved
	p.logger.Info("Saved camera configuration: %s", query)
	return result, nil
}

func (p *Panel) collect() model.ConfigMap {
	configs := make(model.ConfigMap)
	for _, c := range p.form.Checkboxes {
		if c.Switch {
			configs[c.Key] = model.BoolValue(c.Checked)
		}
	}
	for _, key := range []string{model.KeySensitivity, model.KeySoundSensitivity, model.KeyCruise} {
		if s := p.form.Select(key); s != nil {
			configs[key] = s.Value
		}
	}
	return configs
}

// SetChecked changes a checkbox the way a user click does, including the
// motion/AI exclusivity side effects.
func (p *Panel) SetChecked(key string, checked bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	c := p.form.Checkbox(key)
	if c == nil {
		return fmt.Errorf("%w: checkbox %s", ErrUnknownControl, key)
	}
	c.Checked = checked

	switch {
	case c == p.motion:
		p.motionDetectionChanged(c)
	case model.IsAIDetectionKey(key):
		p.aiDetectionChanged(c)
	}
	return nil
}

// SetSelect changes the value of an enum control.
func (p *Panel) SetSelect(key, value string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := p.form.Select(key)
	if s == nil {
		return fmt.Errorf("%w: select %s", ErrUnknownControl, key)
	}
	s.Value = value
	return nil
}

// Checking motion detection clears every AI detection toggle.
func (p *Panel) motionDetectionChanged(c *Checkbox) {
	if c == nil || !c.Checked {
		return
	}
	for _, ai := range p.aiDetections {
		ai.Checked = false
	}
}

// Checking any AI detection toggle clears motion detection. AI toggles never
// clear each other.
func (p *Panel) aiDetectionChanged(c *Checkbox) {
	if c == nil || !c.Checked || p.motion == nil {
		return
	}
	p.motion.Checked = false
}

// Snapshot returns a copy of the current form.
func (p *Panel) Snapshot() *Form {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.form.Clone()
}
