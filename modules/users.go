package modules

import (
	"context"
	"database/sql"
	"errors"

	"feedback-server/database"
	"feedback-server/database/schemas"
)

var ErrUserNotFound = errors.New("user not found")

type UpsertUserData struct {
	DiscordID     string
	Username      string
	Discriminator string
	Avatar        *string
	HasClientRole bool
	IsAdmin       bool
}

func GetUser(ctx context.Context, id string) (*schemas.User, error) {
	user := &schemas.User{}
	err := database.DB.NewSelect().Model(user).Where("id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func GetUserByDiscordID(ctx context.Context, discordID string) (*schemas.User, error) {
	user := &schemas.User{}
	err := database.DB.NewSelect().Model(user).Where("discord_id = ?", discordID).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// UpsertUser creates the user row on first login and refreshes the cached
// profile fields and the role snapshot on every later one.
func UpsertUser(ctx context.Context, data UpsertUserData) (*schemas.User, error) {
	res, err := database.DB.NewUpdate().
		Model((*schemas.User)(nil)).
		Set("username = ?", data.Username).
		Set("discriminator = ?", data.Discriminator).
		Set("avatar = ?", data.Avatar).
		Set("has_client_role = ?", data.HasClientRole).
		Set("is_admin = ?", data.IsAdmin).
		Where("discord_id = ?", data.DiscordID).
		Exec(ctx)
	if err != nil {
		return nil, err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}

	if rowsAffected == 0 {
		user := &schemas.User{
			ID:            data.DiscordID,
			DiscordID:     data.DiscordID,
			Username:      data.Username,
			Discriminator: data.Discriminator,
			Avatar:        data.Avatar,
			HasClientRole: data.HasClientRole,
			IsAdmin:       data.IsAdmin,
		}
		if _, err := database.DB.NewInsert().Model(user).Exec(ctx); err != nil {
			return nil, err
		}
	}

	return GetUserByDiscordID(ctx, data.DiscordID)
}

func GetUserCount() (int, error) {
	return database.DB.NewSelect().Model((*schemas.User)(nil)).Count(context.Background())
}
