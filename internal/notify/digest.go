// Package notify keeps a redis-backed log of created stock alerts and mails
// a daily digest of them.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/smtp"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/terminalhome/ims-backend/internal/models"
	"github.com/terminalhome/ims-backend/internal/redissvc"
)

const DailyAlertLogKey = "alerts:log:daily"

type SMTPSettings struct {
	From         string
	To           string
	Server       string
	Port         string
	User         string
	Password     string
	AuthDisabled bool
}

type Digest struct {
	rdb  *redis.Client
	ctx  context.Context
	smtp SMTPSettings
}

func NewDigest(rs *redissvc.RedisService, smtp SMTPSettings) *Digest {
	return &Digest{rdb: rs.Rdb(), ctx: rs.Ctx(), smtp: smtp}
}

type alertLogEntry struct {
	SKU      string    `json:"sku"`
	Kind     string    `json:"kind"`
	Severity string    `json:"severity"`
	Message  string    `json:"message"`
	Time     time.Time `json:"time"`
}

// AlertCreated implements alerts.Notifier. Failures are logged and dropped;
// the digest is best effort and must never affect the alert path.
func (d *Digest) AlertCreated(a models.StockAlert) {
	entry := alertLogEntry{
		SKU:      a.SKU,
		Kind:     string(a.Kind),
		Severity: string(a.Severity),
		Message:  a.Message,
		Time:     time.Now(),
	}
	data, _ := json.Marshal(entry)
	if err := d.rdb.RPush(d.ctx, DailyAlertLogKey, data).Err(); err != nil {
		log.Printf("Failed to log alert event: %v", err)
	}
}

func (d *Digest) StartDailyDigestLoop(interval time.Duration) {
	for {
		now := time.Now()
		next := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 0, 0, now.Location())
		if now.After(next) {
			next = next.Add(interval)
		}
		time.Sleep(time.Until(next))
		d.SendDailyDigest()
	}
}

func (d *Digest) SendDailyDigest() {
	entries, err := d.rdb.LRange(d.ctx, DailyAlertLogKey, 0, -1).Result()
	if err != nil || len(entries) == 0 {
		return
	}
	_ = d.rdb.Del(d.ctx, DailyAlertLogKey).Err() // clear after reading

	var logs []alertLogEntry
	kindCounts := make(map[string]int)
	skuCounts := make(map[string]int)

	for _, item := range entries {
		var entry alertLogEntry
		if err := json.Unmarshal([]byte(item), &entry); err == nil {
			logs = append(logs, entry)
			kindCounts[entry.Kind]++
			skuCounts[entry.SKU]++
		}
	}

	var sb strings.Builder
	sb.WriteString("<h2>📊 Daily Stock Alert Summary</h2>")
	sb.WriteString(fmt.Sprintf("<p>Total alerts: <strong>%d</strong></p>", len(logs)))

	sb.WriteString("<h3>🏷️ By Kind</h3><ul>")
	for kind, count := range kindCounts {
		sb.WriteString(fmt.Sprintf("<li><code>%s</code>: %d</li>", kind, count))
	}
	sb.WriteString("</ul>")

	sb.WriteString("<h3>📦 By SKU</h3><ul>")
	for sku, count := range skuCounts {
		sb.WriteString(fmt.Sprintf("<li>%s: %d</li>", sku, count))
	}
	sb.WriteString("</ul>")

	sb.WriteString("<h3>📋 Full Log</h3><ul>")
	for _, entry := range logs {
		sb.WriteString(fmt.Sprintf("<li><b>%s</b> %s (%s) at %s</li>",
			entry.SKU, entry.Message, entry.Severity, entry.Time.Format(time.RFC822)))
	}
	sb.WriteString("</ul>")

	msg := strings.Join([]string{
		"From: " + d.smtp.From,
		"To: " + d.smtp.To,
		"Subject: 📊 Daily Stock Alert Report",
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=\"UTF-8\"",
		"",
		sb.String(),
	}, "\r\n")

	addr := fmt.Sprintf("%s:%s", d.smtp.Server, d.smtp.Port)
	auth := smtp.PlainAuth("", d.smtp.User, d.smtp.Password, d.smtp.Server)
	if d.smtp.AuthDisabled {
		auth = nil
	}

	go func() {
		if err := smtp.SendMail(addr, auth, d.smtp.From, []string{d.smtp.To}, []byte(msg)); err != nil {
			log.Printf("❌ Failed to send email: %v\n", err)
		} else {
			log.Println("📬 Daily stock alert summary sent via SMTP.")
		}
	}()
}
