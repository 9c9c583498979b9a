package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Configuration keys reported by get_configs.sh?conf=camera.
const (
	KeyMotionDetection    = "MOTION_DETECTION"
	KeySensitivity        = "SENSITIVITY"
	KeySoundSensitivity   = "SOUND_SENSITIVITY"
	KeyCruise             = "CRUISE"
	KeyAIHumanDetection   = "AI_HUMAN_DETECTION"
	KeyAIVehicleDetection = "AI_VEHICLE_DETECTION"
	KeyAIAnimalDetection  = "AI_ANIMAL_DETECTION"
	KeySaveVideoOnMotion  = "SAVE_VIDEO_ON_MOTION"
	KeySoundDetection     = "SOUND_DETECTION"
	KeyLED                = "LED"
	KeyIR                 = "IR"
	KeyRotate             = "ROTATE"
	KeySwitchOn           = "SWITCH_ON"
	KeyHomeVersion        = "HOMEVER"
)

// Checkbox values as the device writes them.
const (
	Yes = "yes"
	No  = "no"
)

// EnumKeys are bound to select controls rather than checkboxes.
var EnumKeys = []string{KeyMotionDetection, KeySensitivity, KeySoundSensitivity, KeyCruise}

// AIDetectionKeys are the toggles that exclude generic motion detection.
var AIDetectionKeys = []string{KeyAIHumanDetection, KeyAIVehicleDetection, KeyAIAnimalDetection}

// IsEnumKey reports whether key is select-bound.
func IsEnumKey(key string) bool {
	for _, k := range EnumKeys {
		if k == key {
			return true
		}
	}
	return false
}

// IsAIDetectionKey reports whether key is one of the AI detection toggles.
func IsAIDetectionKey(key string) bool {
	for _, k := range AIDetectionKeys {
		if k == key {
			return true
		}
	}
	return false
}

// BoolValue maps a checked state to the device's "yes"/"no".
func BoolValue(checked bool) string {
	if checked {
		return Yes
	}
	return No
}

// ConfigMap is the flat key/value form of the camera configuration.
// A new one is built for every fetch and every save.
type ConfigMap map[string]string

// IsFirmware12 reports whether HOMEVER names a 12.x home firmware.
// A missing version counts as not 12.
func (c ConfigMap) IsFirmware12() bool {
	return strings.HasPrefix(c[KeyHomeVersion], "12")
}

// UnmarshalJSON accepts any JSON object and stringifies non-string values.
func (c *ConfigMap) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		return fmt.Errorf("config map: expected JSON object, got null")
	}

	m := make(ConfigMap, len(raw))
	for k, v := range raw {
		switch val := v.(type) {
		case nil:
			m[k] = ""
		case string:
			m[k] = val
		case float64:
			m[k] = strconv.FormatFloat(val, 'f', -1, 64)
		default:
			m[k] = fmt.Sprint(val)
		}
	}
	*c = m
	return nil
}
