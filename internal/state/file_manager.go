package state

import (
	"os"
	"quranbot/internal/models"
	"quranbot/internal/providers"
	"quranbot/internal/structures"

	json "github.com/goccy/go-json"
)

// StateStoreInterface persists the posting progress between invocations.
// Load returns (nil, nil) when no state exists yet, which is a normal
// first run.
type StateStoreInterface interface {
	Load() (*models.ProgressRecord, error)
	Save(rec *models.ProgressRecord) error
}

type FileManager struct {
	config *structures.Config
	logger providers.Logger
}

func NewFileManager(config *structures.Config, logger providers.Logger) StateStoreInterface {
	return &FileManager{
		config: config,
		logger: logger,
	}
}

func (f *FileManager) Load() (*models.ProgressRecord, error) {
	data, err := os.ReadFile(f.config.Persistence.FilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var rec models.ProgressRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (f *FileManager) Save(rec *models.ProgressRecord) error {
	// Indented so operators can read and, if needed, hand-edit the file.
	jsonData, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}

	fileName := f.config.Persistence.FilePath
	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(jsonData)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	if err = os.Rename(tmpFile, fileName); err != nil {
		return err
	}
	f.logger.Debugf(providers.TypeState, "State saved to %s", fileName)
	return nil
}
