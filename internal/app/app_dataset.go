package app

import (
	"encoding/json"
	"errors"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fieldguide/internal/dataset"
	"fieldguide/internal/resource"
)

// ============================================================
// Dataset bindings
// ============================================================
//
// Each binding returns the envelope as a JSON string:
// {"result": ...} on success, {"error": "..."} on failure.
// The frontend never sees a raised fault, only the tagged shape.

var errEmptyFilename = errors.New("filename cannot be empty")

type resultEnvelope struct {
	Result any `json:"result"`
}

type errorEnvelope struct {
	Error string `json:"error"`
}

func envelope(payload any, err error) string {
	if err == nil {
		data, merr := json.Marshal(resultEnvelope{Result: payload})
		if merr == nil {
			return string(data)
		}
		err = merr
	}
	data, merr := json.Marshal(errorEnvelope{Error: err.Error()})
	if merr != nil {
		return `{"error":"encode envelope"}`
	}
	return string(data)
}

// requestLog tags every line of one binding call with a short
// correlation id.
func (a *App) requestLog(op, filename string) *zap.Logger {
	return a.log.With(
		zap.String("req", uuid.NewString()[:8]),
		zap.String("op", op),
		zap.String("file", filename),
	)
}

// LoadRecords parses <root>/document/<filename> and returns every record
// in file order.
func (a *App) LoadRecords(filename string) string {
	log := a.requestLog("LoadRecords", filename)
	if filename == "" {
		log.Warn("rejected request", zap.Error(errEmptyFilename))
		return envelope(nil, errEmptyFilename)
	}

	log.Debug("loading data file")
	records, err := dataset.ParseFile(a.root.DocumentFile(filename))
	if err != nil {
		log.Error("parse failed", zap.Error(err))
		return envelope(nil, err)
	}
	log.Info("records loaded", zap.Int("count", len(records)))
	return envelope(records, nil)
}

// DistinctTypes returns the distinct Type values found in one data file.
// The set is unordered by contract; it is sorted here so repeated calls
// serialize identically.
func (a *App) DistinctTypes(filename string) string {
	log := a.requestLog("DistinctTypes", filename)
	if filename == "" {
		log.Warn("rejected request", zap.Error(errEmptyFilename))
		return envelope(nil, errEmptyFilename)
	}

	set, err := dataset.DistinctTypes(a.root.DocumentFile(filename))
	if err != nil {
		log.Error("type aggregation failed", zap.Error(err))
		return envelope(nil, err)
	}

	types := make([]string, 0, len(set))
	for t := range set {
		types = append(types, t)
	}
	sort.Strings(types)

	log.Info("types aggregated", zap.Int("count", len(types)))
	return envelope(types, nil)
}

// ListDataFiles lists the entries of <root>/document/, sorted
// case-insensitively.
func (a *App) ListDataFiles() string {
	log := a.requestLog("ListDataFiles", "")

	names, err := resource.ListFiles(a.root.Document())
	if err != nil {
		log.Error("list failed", zap.Error(err))
		return envelope(nil, err)
	}
	log.Debug("data files listed", zap.Int("count", len(names)))
	return envelope(names, nil)
}

// ReadConfigFile returns the raw contents of <root>/config/<filename>.
// Unlike the dataset bindings this is a plain success/error pair; the
// Wails bridge surfaces the error to the caller directly.
func (a *App) ReadConfigFile(filename string) (string, error) {
	log := a.requestLog("ReadConfigFile", filename)
	if filename == "" {
		log.Warn("rejected request", zap.Error(errEmptyFilename))
		return "", errEmptyFilename
	}

	content, err := a.root.ReadConfig(filename)
	if err != nil {
		log.Error("config read failed", zap.Error(err))
		return "", err
	}
	log.Debug("config read", zap.Int("bytes", len(content)))
	return content, nil
}
