package panel

import (
	"context"
	"errors"
	"io"
	"testing"

	"camsettings/internal/logger"
	"camsettings/internal/model"
)

// fakeDevice records what the panel sends and returns canned answers.
type fakeDevice struct {
	configs  model.ConfigMap
	fetchErr error
	saveErr  error
	saved    model.ConfigMap
}

func (d *fakeDevice) FetchConfigs(ctx context.Context) (model.ConfigMap, error) {
	if d.fetchErr != nil {
		return nil, d.fetchErr
	}
	out := make(model.ConfigMap, len(d.configs))
	for k, v := range d.configs {
		out[k] = v
	}
	return out, nil
}

func (d *fakeDevice) SaveConfigs(ctx context.Context, configs model.ConfigMap) (string, error) {
	d.saved = configs
	return "q=" + configs[model.KeyLED], d.saveErr
}

func newTestPanel(device Device) *Panel {
	return New(DefaultForm(), device, logger.NewWriter(io.Discard))
}

// ========================================
// Load
// ========================================

func TestLoad_ScenarioFromDevice(t *testing.T) {
	dev := &fakeDevice{configs: model.ConfigMap{
		"MOTION_DETECTION":   "no",
		"AI_HUMAN_DETECTION": "yes",
		"HOMEVER":            "12.4.0",
	}}
	p := newTestPanel(dev)

	if _, err := p.Load(context.Background()); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	f := p.Snapshot()

	if f.Checkbox(model.KeyMotionDetection).Checked {
		t.Error("MOTION_DETECTION checked, want unchecked")
	}
	if !f.Checkbox(model.KeyAIHumanDetection).Checked {
		t.Error("AI_HUMAN_DETECTION unchecked, want checked")
	}
	for _, r := range f.RowsByClass(ClassFirmware12) {
		if !r.Visible {
			t.Errorf("fw12 row %s hidden, want visible", r.Name)
		}
	}
	for _, r := range f.RowsByClass(ClassNoFirmware12) {
		if r.Visible {
			t.Errorf("no_fw12 row %s visible, want hidden", r.Name)
		}
	}
	if f.LoadingStatus != "" {
		t.Errorf("LoadingStatus = %q, want empty", f.LoadingStatus)
	}
}

func TestLoad_CheckboxOnlyForExactYes(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"yes", true},
		{"no", false},
		{"", false},
		{"1", false},
		{"YES", false},
		{"true", false},
	}

	for _, tt := range tests {
		p := newTestPanel(&fakeDevice{configs: model.ConfigMap{model.KeyLED: tt.value}})
		if _, err := p.Load(context.Background()); err != nil {
			t.Fatalf("Load() error: %v", err)
		}
		if got := p.Snapshot().Checkbox(model.KeyLED).Checked; got != tt.want {
			t.Errorf("LED=%q checked = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestLoad_EnumKeysSetRawSelectValue(t *testing.T) {
	dev := &fakeDevice{configs: model.ConfigMap{
		model.KeySensitivity:      "high",
		model.KeySoundSensitivity: "60",
		model.KeyCruise:           "presets",
	}}
	p := newTestPanel(dev)

	if _, err := p.Load(context.Background()); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	f := p.Snapshot()
	for key, want := range dev.configs {
		if got := f.Select(key).Value; got != want {
			t.Errorf("select %s = %q, want %q", key, got, want)
		}
	}
}

func TestLoad_EnumKeyBoundToSelect(t *testing.T) {
	form := DefaultForm()
	form.Checkboxes = form.Checkboxes[:0]
	form.Selects = append(form.Selects, &Select{Key: model.KeyMotionDetection})
	p := New(form, &fakeDevice{configs: model.ConfigMap{model.KeyMotionDetection: "yes"}}, logger.NewWriter(io.Discard))

	if _, err := p.Load(context.Background()); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got := p.Snapshot().Select(model.KeyMotionDetection).Value; got != "yes" {
		t.Errorf("MOTION_DETECTION select = %q, want %q", got, "yes")
	}
}

func TestLoad_FirmwareRows(t *testing.T) {
	tests := []struct {
		version   string
		fw12      bool
		noFW12Vis bool
	}{
		{"12.3.1", true, false},
		{"11.9.0", false, true},
		{"", false, true},
	}

	for _, tt := range tests {
		p := newTestPanel(&fakeDevice{configs: model.ConfigMap{model.KeyHomeVersion: tt.version}})
		if _, err := p.Load(context.Background()); err != nil {
			t.Fatalf("Load() error: %v", err)
		}
		f := p.Snapshot()
		for _, r := range f.RowsByClass(ClassFirmware12) {
			if r.Visible != tt.fw12 {
				t.Errorf("HOMEVER=%q fw12 row visible = %v, want %v", tt.version, r.Visible, tt.fw12)
			}
		}
		for _, r := range f.RowsByClass(ClassNoFirmware12) {
			if r.Visible != tt.noFW12Vis {
				t.Errorf("HOMEVER=%q no_fw12 row visible = %v, want %v", tt.version, r.Visible, tt.noFW12Vis)
			}
		}
	}
}

func TestLoad_DoesNotReconcileExclusivity(t *testing.T) {
	dev := &fakeDevice{configs: model.ConfigMap{
		model.KeyMotionDetection:    "yes",
		model.KeyAIVehicleDetection: "yes",
	}}
	p := newTestPanel(dev)

	if _, err := p.Load(context.Background()); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	f := p.Snapshot()
	if !f.Checkbox(model.KeyMotionDetection).Checked || !f.Checkbox(model.KeyAIVehicleDetection).Checked {
		t.Error("post-load pass changed loaded toggles, want both left checked")
	}
}

func TestLoad_FailureKeepsLoadingStatus(t *testing.T) {
	p := newTestPanel(&fakeDevice{fetchErr: errors.New("connection refused")})

	if _, err := p.Load(context.Background()); err == nil {
		t.Fatal("Load() expected error")
	}
	if got := p.Snapshot().LoadingStatus; got != StatusLoading {
		t.Errorf("LoadingStatus = %q, want %q", got, StatusLoading)
	}
}

// ========================================
// Exclusivity
// ========================================

func TestSetChecked_MotionClearsAI(t *testing.T) {
	p := newTestPanel(&fakeDevice{})
	for _, key := range model.AIDetectionKeys {
		if err := p.SetChecked(key, true); err != nil {
			t.Fatalf("SetChecked(%s) error: %v", key, err)
		}
	}

	if err := p.SetChecked(model.KeyMotionDetection, true); err != nil {
		t.Fatalf("SetChecked(MOTION_DETECTION) error: %v", err)
	}

	f := p.Snapshot()
	for _, key := range model.AIDetectionKeys {
		if f.Checkbox(key).Checked {
			t.Errorf("%s checked after motion detection enabled, want unchecked", key)
		}
	}
	if !f.Checkbox(model.KeyMotionDetection).Checked {
		t.Error("MOTION_DETECTION unchecked, want checked")
	}
}

func TestSetChecked_AIClearsMotion(t *testing.T) {
	for _, key := range model.AIDetectionKeys {
		p := newTestPanel(&fakeDevice{})
		p.SetChecked(model.KeyMotionDetection, true)

		if err := p.SetChecked(key, true); err != nil {
			t.Fatalf("SetChecked(%s) error: %v", key, err)
		}
		if p.Snapshot().Checkbox(model.KeyMotionDetection).Checked {
			t.Errorf("MOTION_DETECTION still checked after %s enabled", key)
		}
	}
}

func TestSetChecked_AIDetectionsCoexist(t *testing.T) {
	p := newTestPanel(&fakeDevice{})
	p.SetChecked(model.KeyAIHumanDetection, true)
	p.SetChecked(model.KeyAIAnimalDetection, true)

	f := p.Snapshot()
	if !f.Checkbox(model.KeyAIHumanDetection).Checked || !f.Checkbox(model.KeyAIAnimalDetection).Checked {
		t.Error("AI detections cleared each other, want both checked")
	}
}

func TestSetChecked_UncheckHasNoSideEffect(t *testing.T) {
	p := newTestPanel(&fakeDevice{})
	p.SetChecked(model.KeyAIHumanDetection, true)

	p.SetChecked(model.KeyMotionDetection, false)
	if !p.Snapshot().Checkbox(model.KeyAIHumanDetection).Checked {
		t.Error("unchecking motion detection cleared AI_HUMAN_DETECTION")
	}
}

func TestSetChecked_UnknownKey(t *testing.T) {
	p := newTestPanel(&fakeDevice{})
	err := p.SetChecked("NIGHT_MODE", true)
	if !errors.Is(err, ErrUnknownControl) {
		t.Errorf("SetChecked(NIGHT_MODE) error = %v, want ErrUnknownControl", err)
	}
	if err := p.SetSelect(model.KeyLED, "yes"); !errors.Is(err, ErrUnknownControl) {
		t.Errorf("SetSelect(LED) error = %v, want ErrUnknownControl", err)
	}
}

// ========================================
// Save
// ========================================

func TestSave_CollectsSwitchesAndSelects(t *testing.T) {
	form := DefaultForm()
	form.Checkboxes = append(form.Checkboxes,
		&Checkbox{Key: "TIMELAPSE", Switch: true},
		&Checkbox{Key: "OUTSIDE_BLOCK", Checked: true},
	)
	dev := &fakeDevice{}
	p := New(form, dev, logger.NewWriter(io.Discard))

	p.SetChecked(model.KeyLED, true)
	p.SetSelect(model.KeyCruise, "360")

	res, err := p.Save(context.Background())
	if err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	if dev.saved[model.KeyLED] != model.Yes {
		t.Errorf("LED = %q, want yes", dev.saved[model.KeyLED])
	}
	if dev.saved[model.KeyIR] != model.No {
		t.Errorf("IR = %q, want no", dev.saved[model.KeyIR])
	}
	if dev.saved[model.KeyCruise] != "360" {
		t.Errorf("CRUISE = %q, want 360", dev.saved[model.KeyCruise])
	}
	if dev.saved["TIMELAPSE"] != model.No {
		t.Errorf("TIMELAPSE = %q, want collected as no", dev.saved["TIMELAPSE"])
	}
	if _, ok := dev.saved["OUTSIDE_BLOCK"]; ok {
		t.Error("checkbox outside the switch block was collected")
	}
	if res.Query != "q=yes" {
		t.Errorf("Query = %q, want %q", res.Query, "q=yes")
	}
	if got := p.Snapshot().SaveStatus; got != StatusSaved {
		t.Errorf("SaveStatus = %q, want %q", got, StatusSaved)
	}
}

func TestSave_Failure(t *testing.T) {
	p := newTestPanel(&fakeDevice{saveErr: errors.New("500 Internal Server Error")})

	if _, err := p.Save(context.Background()); err == nil {
		t.Fatal("Save() expected error")
	}
	if got := p.Snapshot().SaveStatus; got != StatusSaveError {
		t.Errorf("SaveStatus = %q, want %q", got, StatusSaveError)
	}
}

func TestOnChange_RunsWithPendingStatus(t *testing.T) {
	p := newTestPanel(&fakeDevice{})

	var seen []string
	p.OnChange(func() {
		f := p.Snapshot()
		seen = append(seen, f.LoadingStatus+"|"+f.SaveStatus)
	})

	if _, err := p.Load(context.Background()); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if _, err := p.Save(context.Background()); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	want := []string{StatusLoading + "|", "|" + StatusSaving}
	if len(seen) != len(want) {
		t.Fatalf("OnChange ran %d times, want %d (%q)", len(seen), len(want), seen)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("call %d saw %q, want %q", i, seen[i], want[i])
		}
	}
}

func TestSnapshot_IsIndependentCopy(t *testing.T) {
	p := newTestPanel(&fakeDevice{})
	snap := p.Snapshot()
	snap.Checkbox(model.KeyLED).Checked = true

	if p.Snapshot().Checkbox(model.KeyLED).Checked {
		t.Error("mutating a snapshot changed the panel form")
	}
}
