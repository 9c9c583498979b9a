package panel

import "camsettings/internal/model"

// Row classes for firmware-conditional rows.
const (
	ClassFirmware12   = "fw12"
	ClassNoFirmware12 = "no_fw12"
)

// Checkbox is a yes/no control bound to a configuration key.
type Checkbox struct {
	Key     string `json:"key"`
	Checked bool   `json:"checked"`
	// Switch marks checkboxes inside the configs-switch block; only those are collected on save.
	Switch bool `json:"switch"`
}

// Select is an enum control bound to a configuration key.
type Select struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Row is a table row whose visibility depends on the home firmware.
type Row struct {
	Name    string `json:"name"`
	Class   string `json:"class"`
	Visible bool   `json:"visible"`
}

// Form is the view-model of the camera settings page.
type Form struct {
	Checkboxes    []*Checkbox `json:"checkboxes"`
	Selects       []*Select   `json:"selects"`
	Rows          []*Row      `json:"rows"`
	LoadingStatus string      `json:"loading_status"`
	SaveStatus    string      `json:"save_status"`
}

// Checkbox returns the checkbox bound to key, or nil.
func (f *Form) Checkbox(key string) *Checkbox {
	for _, c := range f.Checkboxes {
		if c.Key == key {
			return c
		}
	}
	return nil
}

// Select returns the select bound to key, or nil.
func (f *Form) Select(key string) *Select {
	for _, s := range f.Selects {
		if s.Key == key {
			return s
		}
	}
	return nil
}

// RowsByClass returns every row carrying class.
func (f *Form) RowsByClass(class string) []*Row {
	var rows []*Row
	for _, r := range f.Rows {
		if r.Class == class {
			rows = append(rows, r)
		}
	}
	return rows
}

// Clone returns a deep copy that shares nothing with f.
func (f *Form) Clone() *Form {
	c := &Form{
		Checkboxes:    make([]*Checkbox, len(f.Checkboxes)),
		Selects:       make([]*Select, len(f.Selects)),
		Rows:          make([]*Row, len(f.Rows)),
		LoadingStatus: f.LoadingStatus,
		SaveStatus:    f.SaveStatus,
	}
	for i, cb := range f.Checkboxes {
		cp := *cb
		c.Checkboxes[i] = &cp
	}
	for i, s := range f.Selects {
		cp := *s
		c.Selects[i] = &cp
	}
	for i, r := range f.Rows {
		cp := *r
		c.Rows[i] = &cp
	}
	return c
}

// DefaultForm returns the layout of the camera settings page: every toggle
// in the configs-switch block, the three enum selects, and the rows that
// depend on the home firmware (hidden until a load decides).
func DefaultForm() *Form {
	switches := []string{
		model.KeySwitchOn,
		model.KeySaveVideoOnMotion,
		model.KeyMotionDetection,
		model.KeyAIHumanDetection,
		model.KeyAIVehicleDetection,
		model.KeyAIAnimalDetection,
		model.KeySoundDetection,
		model.KeyLED,
		model.KeyIR,
		model.KeyRotate,
	}

	f := &Form{}
	for _, key := range switches {
		f.Checkboxes = append(f.Checkboxes, &Checkbox{Key: key, Switch: true})
	}
	for _, key := range []string{model.KeySensitivity, model.KeySoundSensitivity, model.KeyCruise} {
		f.Selects = append(f.Selects, &Select{Key: key})
	}
	for _, key := range model.AIDetectionKeys {
		f.Rows = append(f.Rows, &Row{Name: key, Class: ClassFirmware12})
	}
	f.Rows = append(f.Rows, &Row{Name: "AI_DETECTION_UNSUPPORTED", Class: ClassNoFirmware12})
	return f
}
