package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"salonmarket-backend/policy"
)

func pathID(c *gin.Context, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		return uuid.Nil, policy.ErrBadResourceID
	}
	return id, nil
}

// UserResource targets the user named by the :id path parameter.
func UserResource(param string) policy.Loader {
	return func(c *gin.Context) (policy.Resource, error) {
		id, err := pathID(c, param)
		if err != nil {
			return policy.Resource{}, err
		}
		return policy.Resource{ID: id, OwnerID: id}, nil
	}
}

// SalonResource targets a salon, owned by its owner.
func SalonResource(store ResourceStore, param string) policy.Loader {
	return func(c *gin.Context) (policy.Resource, error) {
		id, err := pathID(c, param)
		if err != nil {
			return policy.Resource{}, err
		}
		salon, err := store.GetSalon(c.Request.Context(), id)
		if err != nil {
			return policy.Resource{}, err
		}
		return policy.Resource{ID: salon.ID, OwnerID: salon.OwnerID}, nil
	}
}

// ServiceResource targets a service, owned by the owner of its salon.
func ServiceResource(store ResourceStore, param string) policy.Loader {
	return func(c *gin.Context) (policy.Resource, error) {
		id, err := pathID(c, param)
		if err != nil {
			return policy.Resource{}, err
		}
		service, err := store.GetService(c.Request.Context(), id)
		if err != nil {
			return policy.Resource{}, err
		}
		salon, err := store.GetSalon(c.Request.Context(), service.SalonID)
		if err != nil {
			return policy.Resource{}, err
		}
		return policy.Resource{ID: service.ID, OwnerID: salon.OwnerID}, nil
	}
}

// PromotionResource targets a promotion, owned by the owner of the service's salon.
func PromotionResource(store ResourceStore, param string) policy.Loader {
	return func(c *gin.Context) (policy.Resource, error) {
		id, err := pathID(c, param)
		if err != nil {
			return policy.Resource{}, err
		}
		promotion, err := store.GetPromotion(c.Request.Context(), id)
		if err != nil {
			return policy.Resource{}, err
		}
		service, err := store.GetService(c.Request.Context(), promotion.ServiceID)
		if err != nil {
			return policy.Resource{}, err
		}
		salon, err := store.GetSalon(c.Request.Context(), service.SalonID)
		if err != nil {
			return policy.Resource{}, err
		}
		return policy.Resource{ID: promotion.ID, OwnerID: salon.OwnerID}, nil
	}
}
