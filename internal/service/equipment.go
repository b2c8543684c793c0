package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"equiptrack-backend/internal/domain"
	"equiptrack-backend/internal/logger"
	"equiptrack-backend/internal/repository"
	"equiptrack-backend/internal/storage"

	qrcode "github.com/skip2/go-qrcode"
)

const qrImageSize = 256

type equipmentService struct {
	store repository.Store
	blobs storage.BlobStorage
}

func NewEquipmentService(store repository.Store, blobs storage.BlobStorage) EquipmentService {
	return &equipmentService{store: store, blobs: blobs}
}

func (s *equipmentService) Create(ctx context.Context, actor domain.Actor, eq *domain.Equipment) (string, error) {
	eq.SerialNumber = strings.TrimSpace(eq.SerialNumber)
	if eq.SerialNumber == "" {
		return "", fmt.Errorf("%w: serial number is required", domain.ErrValidation)
	}
	if !domain.ValidEquipmentType(eq.Type) {
		return "", fmt.Errorf("%w: unknown equipment type %q", domain.ErrValidation, eq.Type)
	}
	if eq.Condition == "" {
		eq.Condition = domain.ConditionGood
	}
	if !domain.ValidCondition(eq.Condition) {
		return "", fmt.Errorf("%w: unknown condition %q", domain.ErrValidation, eq.Condition)
	}
	eq.Status = domain.EquipmentStatusAvailable

	err := s.store.WithinTx(ctx, func(r repository.Repos) error {
		if err := r.Equipment.Create(ctx, eq); err != nil {
			return err
		}
		return r.Audit.Append(ctx, &domain.AuditLog{
			UserID:     actor.UserID,
			Action:     domain.AuditActionCreate,
			TargetType: "equipment",
			TargetID:   fmt.Sprintf("%d", eq.ID),
			Details:    map[string]string{"serial_number": eq.SerialNumber, "type": string(eq.Type)},
			IPAddress:  actor.IPAddress,
		})
	})
	if err != nil {
		return "", err
	}

	// The QR label is an attachment, not part of the record's integrity. A
	// rendering or storage failure downgrades to a warning.
	if warning := s.attachQRCode(ctx, eq); warning != "" {
		return warning, nil
	}
	return "", nil
}

func (s *equipmentService) attachQRCode(ctx context.Context, eq *domain.Equipment) string {
	payload := "EQUIPMENT:" + eq.SerialNumber
	png, err := qrcode.Encode(payload, qrcode.Medium, qrImageSize)
	if err != nil {
		logger.Warn("QR code rendering failed", "equipment_id", eq.ID, "error", err)
		return fmt.Sprintf("QR code could not be generated: %v", err)
	}

	key := fmt.Sprintf("qr_codes/qr_%s.png", eq.SerialNumber)
	if err := s.blobs.Save(ctx, key, bytes.NewReader(png)); err != nil {
		logger.Warn("QR code storage failed", "equipment_id", eq.ID, "error", err)
		return fmt.Sprintf("QR code could not be stored: %v", err)
	}

	if err := s.store.Repos().Equipment.SetQRCodePath(ctx, eq.ID, key); err != nil {
		logger.Warn("QR code path update failed", "equipment_id", eq.ID, "error", err)
		return fmt.Sprintf("QR code path could not be saved: %v", err)
	}
	eq.QRCodePath = key
	return ""
}

func (s *equipmentService) Get(ctx context.Context, id int32) (*domain.Equipment, error) {
	return s.store.Repos().Equipment.GetByID(ctx, id)
}

func (s *equipmentService) Update(ctx context.Context, actor domain.Actor, id int32, imei *string, condition domain.EquipmentCondition) (*domain.Equipment, error) {
	if condition != "" && !domain.ValidCondition(condition) {
		return nil, fmt.Errorf("%w: unknown condition %q", domain.ErrValidation, condition)
	}

	var eq *domain.Equipment
	err := s.store.WithinTx(ctx, func(r repository.Repos) error {
		var err error
		eq, err = r.Equipment.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if imei != nil {
			eq.IMEI = imei
		}
		if condition != "" {
			eq.Condition = condition
		}
		if err := r.Equipment.Update(ctx, eq); err != nil {
			return err
		}
		return r.Audit.Append(ctx, &domain.AuditLog{
			UserID:     actor.UserID,
			Action:     domain.AuditActionUpdate,
			TargetType: "equipment",
			TargetID:   fmt.Sprintf("%d", id),
			Details:    map[string]string{"condition": string(eq.Condition)},
			IPAddress:  actor.IPAddress,
		})
	})
	if err != nil {
		return nil, err
	}
	return eq, nil
}

func (s *equipmentService) Retire(ctx context.Context, actor domain.Actor, id int32) (*domain.Equipment, error) {
	var eq *domain.Equipment
	err := s.store.WithinTx(ctx, func(r repository.Repos) error {
		var err error
		eq, err = r.Equipment.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		next, err := domain.NextStatus(eq.Status, domain.EventRetire)
		if err != nil {
			return err
		}
		if err := r.Equipment.SetStatus(ctx, eq.ID, next); err != nil {
			return err
		}
		eq.Status = next
		return r.Audit.Append(ctx, &domain.AuditLog{
			UserID:     actor.UserID,
			Action:     domain.AuditActionRetire,
			TargetType: "equipment",
			TargetID:   fmt.Sprintf("%d", id),
			Details:    map[string]string{"serial_number": eq.SerialNumber},
			IPAddress:  actor.IPAddress,
		})
	})
	if err != nil {
		return nil, err
	}
	return eq, nil
}

func (s *equipmentService) List(ctx context.Context, filter repository.EquipmentFilter, page, pageSize int32) ([]domain.Equipment, int32, error) {
	return s.store.Repos().Equipment.List(ctx, filter, page, pageSize)
}
