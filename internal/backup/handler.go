package backup

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"cantina-backend/internal/store"
)

// POST /api/backup
// Stamps the snapshot and writes a copy under the backup key.
func CreateHandler(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		state, err := st.Load(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load snapshot")
		}

		state.LastBackupAt = time.Now()
		if err := st.Save(c.Context(), state); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not save snapshot")
		}
		if err := st.SaveBackup(c.Context(), state); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not write backup")
		}

		return c.JSON(fiber.Map{"last_backup_at": state.LastBackupAt})
	}
}

// POST /api/backup/restore
// Replaces the live snapshot with the last backup copy.
func RestoreHandler(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		state, err := st.LoadBackup(c.Context())
		if err != nil {
			if errors.Is(err, store.ErrNoBackup) {
				return fiber.NewError(fiber.StatusNotFound, "No backup found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Could not read backup")
		}

		if err := st.Save(c.Context(), state); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not restore backup")
		}
		return c.JSON(fiber.Map{"restored": true})
	}
}

// GET /api/backup/export
// Downloads the full snapshot as a dated JSON file.
func ExportHandler(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		state, err := st.Load(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load snapshot")
		}

		state.LastBackupAt = time.Now()
		if err := st.Save(c.Context(), state); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not save snapshot")
		}
		if err := st.SaveBackup(c.Context(), state); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not write backup")
		}

		raw, err := store.Encode(state)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not serialize snapshot")
		}

		filename := fmt.Sprintf("respaldo-crm-%s.json", time.Now().Format("2006-01-02"))
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
		return c.Send(raw)
	}
}

// POST /api/backup/import
// Replaces the live snapshot verbatim with the uploaded JSON document. A
// document that does not parse leaves the persisted snapshot untouched.
func ImportHandler(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Body()
		if len(raw) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Backup file is empty")
		}

		state, err := store.Decode(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Backup file could not be parsed")
		}

		if err := st.Save(c.Context(), state); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not save imported snapshot")
		}
		return c.JSON(fiber.Map{"imported": true})
	}
}
