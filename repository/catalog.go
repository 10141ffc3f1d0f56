package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"salonmarket-backend/models"
)

func (r *Repository) CreateSalon(ctx context.Context, salon *models.Salon) error {
	return translate(r.db.WithContext(ctx).Create(salon).Error)
}

func (r *Repository) GetSalon(ctx context.Context, id uuid.UUID) (*models.Salon, error) {
	var salon models.Salon
	if err := r.db.WithContext(ctx).First(&salon, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &salon, nil
}

func (r *Repository) GetSchedule(ctx context.Context, salonID uuid.UUID) ([]models.WorkingHours, error) {
	var schedule []models.WorkingHours
	err := r.db.WithContext(ctx).
		Where("salon_id = ?", salonID).
		Order("weekday, open_time").
		Find(&schedule).Error
	return schedule, err
}

// ReplaceSchedule swaps the salon's whole weekly schedule in one transaction.
func (r *Repository) ReplaceSchedule(ctx context.Context, salonID uuid.UUID, entries []models.WorkingHours) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("salon_id = ?", salonID).Delete(&models.WorkingHours{}).Error; err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}
		for i := range entries {
			entries[i].ID = uuid.Nil
			entries[i].SalonID = salonID
		}
		return tx.Create(&entries).Error
	})
}

func (r *Repository) CreateService(ctx context.Context, service *models.Service) error {
	return translate(r.db.WithContext(ctx).Create(service).Error)
}

func (r *Repository) GetService(ctx context.Context, id uuid.UUID) (*models.Service, error) {
	var service models.Service
	if err := r.db.WithContext(ctx).First(&service, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &service, nil
}

func (r *Repository) ListServices(ctx context.Context, salonID uuid.UUID) ([]models.Service, error) {
	var services []models.Service
	err := r.db.WithContext(ctx).
		Where("salon_id = ?", salonID).
		Order("name").
		Find(&services).Error
	return services, err
}

func (r *Repository) UpdateService(ctx context.Context, service *models.Service) error {
	return translate(r.db.WithContext(ctx).Save(service).Error)
}

func (r *Repository) DeleteService(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Service{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) ListPromotions(ctx context.Context, serviceID uuid.UUID) ([]models.Promotion, error) {
	var promotions []models.Promotion
	err := r.db.WithContext(ctx).
		Where("service_id = ?", serviceID).
		Order("start_time DESC").
		Find(&promotions).Error
	return promotions, err
}

// ListPromotionsFor groups the promotions of several services by service id.
func (r *Repository) ListPromotionsFor(ctx context.Context, serviceIDs []uuid.UUID) (map[uuid.UUID][]models.Promotion, error) {
	grouped := make(map[uuid.UUID][]models.Promotion, len(serviceIDs))
	if len(serviceIDs) == 0 {
		return grouped, nil
	}
	var promotions []models.Promotion
	if err := r.db.WithContext(ctx).
		Where("service_id IN ?", serviceIDs).
		Find(&promotions).Error; err != nil {
		return nil, err
	}
	for _, p := range promotions {
		grouped[p.ServiceID] = append(grouped[p.ServiceID], p)
	}
	return grouped, nil
}

func (r *Repository) CreatePromotion(ctx context.Context, promotion *models.Promotion) error {
	return translate(r.db.WithContext(ctx).Create(promotion).Error)
}

func (r *Repository) GetPromotion(ctx context.Context, id uuid.UUID) (*models.Promotion, error) {
	var promotion models.Promotion
	if err := r.db.WithContext(ctx).First(&promotion, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &promotion, nil
}

func (r *Repository) DeletePromotion(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Promotion{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
