package service

import (
	"context"
	"fmt"

	"equiptrack-backend/internal/domain"
	"equiptrack-backend/internal/repository"

	"github.com/xuri/excelize/v2"
)

// exportPageSize bounds one inventory query for the Excel export.
const exportPageSize = 10000

type reportService struct {
	store repository.Store
}

func NewReportService(store repository.Store) ReportService {
	return &reportService{store: store}
}

func (s *reportService) Build(ctx context.Context) (*domain.Report, error) {
	repos := s.store.Repos()

	equipment, err := repos.Reports.EquipmentCountsByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("equipment counts: %w", err)
	}
	byType, err := repos.Reports.IncidentCountsByType(ctx)
	if err != nil {
		return nil, fmt.Errorf("incident counts by type: %w", err)
	}
	byStatus, err := repos.Reports.IncidentCountsByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("incident counts by status: %w", err)
	}
	agents, err := repos.Reports.AgentCountsByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("agent counts: %w", err)
	}

	report := &domain.Report{
		EquipmentByStatus: equipment,
		IncidentsByType:   byType,
		IncidentsByStatus: byStatus,
	}
	for _, c := range agents {
		switch domain.AgentStatus(c.Label) {
		case domain.AgentStatusActive:
			report.AgentsActive = c.Total
		case domain.AgentStatusInactive:
			report.AgentsInactive = c.Total
		}
	}
	return report, nil
}

func (s *reportService) ExportExcel(ctx context.Context) ([]byte, error) {
	repos := s.store.Repos()

	equipment, _, err := repos.Equipment.List(ctx, repository.EquipmentFilter{}, 1, exportPageSize)
	if err != nil {
		return nil, fmt.Errorf("list equipment: %w", err)
	}
	agents, _, err := repos.Agents.List(ctx, repository.AgentFilter{}, 1, exportPageSize)
	if err != nil {
		return nil, fmt.Errorf("list agents: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const equipmentSheet = "Equipment"
	if err := f.SetSheetName("Sheet1", equipmentSheet); err != nil {
		return nil, err
	}
	equipmentHeader := []interface{}{"Type", "Serial Number", "IMEI", "Status", "Condition"}
	if err := f.SetSheetRow(equipmentSheet, "A1", &equipmentHeader); err != nil {
		return nil, err
	}
	for i, eq := range equipment {
		imei := ""
		if eq.IMEI != nil {
			imei = *eq.IMEI
		}
		row := []interface{}{string(eq.Type), eq.SerialNumber, imei, string(eq.Status), string(eq.Condition)}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(equipmentSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	const agentSheet = "Agents"
	if _, err := f.NewSheet(agentSheet); err != nil {
		return nil, err
	}
	agentHeader := []interface{}{"Identifier", "First Name", "Last Name", "Phone", "Email", "Status"}
	if err := f.SetSheetRow(agentSheet, "A1", &agentHeader); err != nil {
		return nil, err
	}
	for i, a := range agents {
		row := []interface{}{a.Identifier, a.FirstName, a.LastName, a.Phone, a.Email, string(a.Status)}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(agentSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
