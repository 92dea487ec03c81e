package database

import (
	"context"

	"feedback-server/database/schemas"
)

func createSchema() error {
	models := []any{
		(*schemas.User)(nil),
		(*schemas.Feedback)(nil),
	}

	for _, model := range models {
		if _, err := DB.NewCreateTable().IfNotExists().Model(model).WithForeignKeys().Exec(context.Background()); err != nil {
			return err
		}
	}
	return nil
}
