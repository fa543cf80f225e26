package admin

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/jamshidbekman/rivojbot/core/logger"
	"github.com/jamshidbekman/rivojbot/core/telegram/format"
	"github.com/jamshidbekman/rivojbot/internal/lead"
	"github.com/jamshidbekman/rivojbot/internal/reply"
)

var csvHeader = []string{"ID", "Ism", "Telefon", "Kasb", "Muammo", "Vaqt", "User_ID", "Username"}

// WriteCSV writes leads in insertion order and returns the row count.
func (s *Service) WriteCSV(ctx context.Context, w io.Writer) (int, error) {
	leads := s.leads(ctx)
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return 0, err
	}
	for _, l := range leads {
		if err := cw.Write(s.csvRow(l)); err != nil {
			return 0, err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return 0, err
	}
	return len(leads), nil
}

func (s *Service) csvRow(l lead.Lead) []string {
	return []string{
		strconv.FormatInt(l.ID, 10),
		l.FirstName,
		l.Phone,
		l.Role.Label(),
		l.Problem.Label(),
		format.DateTime(l.CapturedAt, s.opts.Location),
		strconv.FormatInt(l.UserID, 10),
		format.OrDefault(l.Username, "Yo'q"),
	}
}

// Export renders every lead as a CSV attachment.
func (s *Service) Export(ctx context.Context, userID int64) ([]reply.Intent, error) {
	if err := s.denied(ctx, userID, "export"); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	n, err := s.WriteCSV(ctx, &buf)
	if err != nil {
		logger.Error(ctx, logger.CompAdmin, "admin.export",
			slog.String("status", "fail"),
			logger.Err(err),
		)
		return []reply.Intent{reply.Text("❌ Export qilishda xatolik yuz berdi.", reply.KeyboardNone)}, nil
	}
	if n == 0 {
		return []reply.Intent{reply.Text("📋 Export qilish uchun ma'lumot yo'q.", reply.KeyboardNone)}, nil
	}

	now := s.opts.Now()
	caption := fmt.Sprintf("📥 <b>Leadlar export qilindi</b>\n\n📊 Jami: %d ta\n📅 Sana: %s\n\n💡 Faylni Excel yoki Google Sheets da oching.",
		n, format.DateTime(now, s.opts.Location))
	logger.Info(ctx, logger.CompAdmin, "admin.export",
		slog.String("status", "ok"),
		slog.Int("rows", n),
	)
	return []reply.Intent{
		reply.Action(reply.ActionUploadDocument),
		reply.Doc(reply.Document{
			Data:     buf.Bytes(),
			FileName: "leads_" + now.In(s.opts.Location).Format("2006-01-02") + ".csv",
			Caption:  caption,
			Fallback: "❌ Export qilishda xatolik yuz berdi.",
		}, reply.KeyboardNone),
	}, nil
}
