package device

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"

	"camsettings/internal/config"
	"camsettings/internal/logger"
	"camsettings/internal/model"
)

const (
	getConfigsPath     = "/cgi-bin/get_configs.sh?conf=camera"
	cameraSettingsPath = "/cgi-bin/camera_settings.sh"
)

// saveParams is the fixed parameter list of camera_settings.sh, in wire order.
// Collected keys outside this list are never sent.
var saveParams = []struct {
	Param string
	Key   string
}{
	{"save_video_on_motion", model.KeySaveVideoOnMotion},
	{"motion_detection", model.KeyMotionDetection},
	{"sensitivity", model.KeySensitivity},
	{"ai_human_detection", model.KeyAIHumanDetection},
	{"ai_vehicle_detection", model.KeyAIVehicleDetection},
	{"ai_animal_detection", model.KeyAIAnimalDetection},
	{"sound_detection", model.KeySoundDetection},
	{"sound_sensitivity", model.KeySoundSensitivity},
	{"led", model.KeyLED},
	{"ir", model.KeyIR},
	{"rotate", model.KeyRotate},
	{"switch_on", model.KeySwitchOn},
	{"cruise", model.KeyCruise},
}

// Client talks to the camera's CGI scripts.
type Client struct {
	baseURL    string
	user       string
	password   string
	httpClient *http.Client
	logger     *logger.Logger
}

// NewClient creates a Client for the device configured in cfg.
func NewClient(cfg *config.Config, logger *logger.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.DeviceURL, "/"),
		user:       cfg.DeviceUser,
		password:   cfg.DevicePassword,
		httpClient: &http.Client{Timeout: cfg.DeviceTimeout},
		logger:     logger,
	}
}

// FetchConfigs reads the camera configuration.
func (c *Client) FetchConfigs(ctx context.Context) (model.ConfigMap, error) {
	body, err := c.get(ctx, getConfigsPath)
	if err != nil {
		return nil, errors.Wrap(err, "fetch camera configs")
	}

	var configs model.ConfigMap
	if err := json.Unmarshal(body, &configs); err != nil {
		return nil, errors.Wrap(err, "decode camera configs")
	}
	return configs, nil
}

// SaveConfigs writes configs through camera_settings.sh and returns the
// query string sent. The device must answer 2xx with a JSON body.
func (c *Client) SaveConfigs(ctx context.Context, configs model.ConfigMap) (string, error) {
	query := EncodeCameraSettings(configs)

	body, err := c.get(ctx, cameraSettingsPath+"?"+query)
	if err != nil {
		return query, errors.Wrap(err, "save camera configs")
	}
	if !json.Valid(body) {
		return query, errors.Errorf("save camera configs: invalid JSON response %q", truncate(body, 64))
	}
	return query, nil
}

// EncodeCameraSettings builds the camera_settings.sh query: all thirteen
// parameters in fixed order, missing values sent empty.
func EncodeCameraSettings(configs model.ConfigMap) string {
	var b strings.Builder
	for i, p := range saveParams {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(p.Param)
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(configs[p.Key]))
	}
	return b.String()
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	if c.user != "" {
		req.SetBasicAuth(c.user, c.password)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read response")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warning("Camera answered %s for %s: %s", resp.Status, path, truncate(body, 128))
		return nil, errors.Errorf("unexpected status %s", resp.Status)
	}
	return body, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
