package service

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/weddingmoments/studio-backend/internal/catalog/domain"
)

// ExportFile is a downloadable catalog snapshot.
type ExportFile struct {
	Filename string
	Data     []byte
}

// Export serialises the admin view of the catalog as indented JSON.
func (s *Store) Export() (ExportFile, error) {
	data, err := json.MarshalIndent(s.List(ViewAdmin), "", "  ")
	if err != nil {
		return ExportFile{}, fmt.Errorf("marshal catalog: %w", err)
	}
	return ExportFile{
		Filename: fmt.Sprintf("services-%s.json", s.now().Format("2006-01-02")),
		Data:     data,
	}, nil
}

// ImportPreview describes a parsed catalog file. Nothing is written.
type ImportPreview struct {
	Count       int      `json:"count"`
	ServiceIDs  []string `json:"serviceIds"`
	SubServices int      `json:"subServices"`
}

// PreviewImport parses a catalog file in export format.
func PreviewImport(data []byte) (ImportPreview, error) {
	var services []domain.Service
	if err := json.Unmarshal(data, &services); err != nil {
		return ImportPreview{}, fmt.Errorf("%w: %v", domain.ErrInvalidImport, err)
	}

	p := ImportPreview{Count: len(services), ServiceIDs: make([]string, 0, len(services))}
	for _, svc := range services {
		p.ServiceIDs = append(p.ServiceIDs, svc.ID)
		p.SubServices += len(svc.SubServices)
	}
	return p, nil
}

// Summary is the data-management overview of the settings screen.
type Summary struct {
	Services    int   `json:"services"`
	SubServices int   `json:"subServices"`
	SizeKB      int64 `json:"sizeKB"`
}

func (s *Store) Summary() (Summary, error) {
	services := s.List(ViewAdmin)
	data, err := json.Marshal(services)
	if err != nil {
		return Summary{}, fmt.Errorf("marshal catalog: %w", err)
	}

	sum := Summary{Services: len(services), SizeKB: int64(math.Round(float64(len(data)) / 1024))}
	for _, svc := range services {
		sum.SubServices += len(svc.SubServices)
	}
	return sum, nil
}
