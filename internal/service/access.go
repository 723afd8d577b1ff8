package service

import "github.com/SergeyBogomolovv/store-orders/internal/entities"

// authorizeStore проверяет, что вызывающий может работать с заказами магазина.
func authorizeStore(caller entities.Identity, storeID int64) error {
	switch caller.Role {
	case entities.RoleAdmin:
		return nil
	case entities.RoleStore:
		if caller.OwnsStore(storeID) {
			return nil
		}
		return entities.ErrAccessDenied
	default:
		return entities.ErrAccessDenied
	}
}

// listScope возвращает фильтр по магазину для списка заказов: nil для админа.
func listScope(caller entities.Identity) (*int64, error) {
	switch caller.Role {
	case entities.RoleAdmin:
		return nil, nil
	case entities.RoleStore:
		if caller.StoreID == nil {
			return nil, entities.ErrAccessDenied
		}
		storeID := *caller.StoreID
		return &storeID, nil
	default:
		return nil, entities.ErrAccessDenied
	}
}
