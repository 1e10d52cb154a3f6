package update

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/recaplabs/recapd/internal/model"
)

type uiState struct {
	LastViewedDay string `json:"last_viewed_day"`
}

func persistLastViewedDay(path string, day model.DayKey) error {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil
	}
	dir := filepath.Dir(trimmed)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	payload, err := json.MarshalIndent(uiState{LastViewedDay: string(day)}, "", "  ")
	if err != nil {
		return err
	}
	tmp := trimmed + ".tmp"
	if err := os.WriteFile(tmp, append(payload, '\n'), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, trimmed)
}

func loadLastViewedDay(path string) (model.DayKey, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", nil
	}
	raw, err := os.ReadFile(trimmed)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	if strings.TrimSpace(string(raw)) == "" {
		return "", nil
	}
	var state uiState
	if err := json.Unmarshal(raw, &state); err != nil {
		return "", err
	}
	day, err := model.ParseDayKey(state.LastViewedDay)
	if err != nil {
		return "", err
	}
	return day, nil
}
