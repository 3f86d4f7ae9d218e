package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"agentmgr/domain/core"
	"agentmgr/domain/report"
	"agentmgr/ports"
)

const reportKeyPrefix = "reports/"

// reportRepository implements ports.ReportRepository
type reportRepository struct {
	store ports.KVStore
}

// NewReportRepository creates a report repository over a KV store
func NewReportRepository(store ports.KVStore) ports.ReportRepository {
	return &reportRepository{store: store}
}

func reportKey(id core.ReportID) string {
	return reportKeyPrefix + id.String()
}

// Create stores a synthesized report
func (r *reportRepository) Create(ctx context.Context, rep *report.Report) error {
	value, err := json.Marshal(rep)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := r.store.Set(ctx, reportKey(rep.ID), value); err != nil {
		return fmt.Errorf("failed to store report: %w", err)
	}
	return nil
}

// GetByID loads a report by its ID
func (r *reportRepository) GetByID(ctx context.Context, id core.ReportID) (*report.Report, error) {
	value, found, err := r.store.Get(ctx, reportKey(id))
	if err != nil {
		return nil, fmt.Errorf("failed to load report: %w", err)
	}
	if !found {
		return nil, core.NewNotFoundError("report", id.String())
	}

	var rep report.Report
	if err := json.Unmarshal(value, &rep); err != nil {
		return nil, fmt.Errorf("failed to decode report %s: %w", id, err)
	}
	return &rep, nil
}

// List returns all stored reports
func (r *reportRepository) List(ctx context.Context) ([]*report.Report, error) {
	keys, err := r.store.Keys(ctx, reportKeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}

	reports := make([]*report.Report, 0, len(keys))
	for _, key := range keys {
		value, found, err := r.store.Get(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("failed to load report at %s: %w", key, err)
		}
		if !found {
			continue
		}
		var rep report.Report
		if err := json.Unmarshal(value, &rep); err != nil {
			return nil, fmt.Errorf("failed to decode report at %s: %w", key, err)
		}
		reports = append(reports, &rep)
	}
	return reports, nil
}

// ListByAgent returns all reports generated by one agent
func (r *reportRepository) ListByAgent(ctx context.Context, agentID core.AgentID) ([]*report.Report, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	filtered := make([]*report.Report, 0, len(all))
	for _, rep := range all {
		if rep.AgentID == agentID {
			filtered = append(filtered, rep)
		}
	}
	return filtered, nil
}

// Delete removes a report record
func (r *reportRepository) Delete(ctx context.Context, id core.ReportID) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return r.store.Delete(ctx, reportKey(id))
}
