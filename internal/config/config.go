package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	SynapseAuthToken string
	SynapseBaseURL   string

	RegistrationTeamID string
	DataAccessTeamID   string
	ChallengeEntityID  string

	ResponseSource           string // csv / gsheet
	SheetCSVURL              string
	SpreadsheetID            string
	GoogleServiceAccountJSON string
	ResponsesSheetName       string

	IdentityColumn  string
	TimestampColumn string
	TeamColumn      string

	InviteMessage string

	Notifier       string // platform / telegram
	AdminAccountID string
	TelegramToken  string
	AdminChatID    int64

	RunMode          string // once / serve
	HTTPAddr         string
	RunWebhookSecret string
}

const defaultInviteMessage = "Thank you for your interest in the challenge! <br/><br/>" +
	"Once you click 'Join', you will be able to access the challenge data."

func FromEnv() (Config, error) {
	var c Config
	c.SynapseAuthToken = strings.TrimSpace(os.Getenv("SYNAPSE_AUTH_TOKEN"))
	c.SynapseBaseURL = strings.TrimRight(strings.TrimSpace(os.Getenv("SYNAPSE_BASE_URL")), "/")
	if c.SynapseBaseURL == "" {
		c.SynapseBaseURL = "https://repo-prod.prod.sagebase.org/repo/v1"
	}

	c.RegistrationTeamID = strings.TrimSpace(os.Getenv("REGISTRATION_TEAM_ID"))
	c.DataAccessTeamID = strings.TrimSpace(os.Getenv("DATA_ACCESS_TEAM_ID"))
	c.ChallengeEntityID = strings.TrimSpace(os.Getenv("CHALLENGE_ENTITY_ID"))

	c.ResponseSource = strings.TrimSpace(os.Getenv("RESPONSE_SOURCE"))
	if c.ResponseSource == "" {
		c.ResponseSource = "csv"
	}
	c.SheetCSVURL = strings.TrimSpace(os.Getenv("SHEET_CSV_URL"))
	c.SpreadsheetID = strings.TrimSpace(os.Getenv("GOOGLE_SHEETS_SPREADSHEET_ID"))
	c.GoogleServiceAccountJSON = strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	c.ResponsesSheetName = strings.TrimSpace(os.Getenv("RESPONSES_SHEET_NAME"))
	if c.ResponsesSheetName == "" {
		c.ResponsesSheetName = "Responses"
	}

	c.IdentityColumn = strings.TrimSpace(os.Getenv("IDENTITY_COLUMN"))
	if c.IdentityColumn == "" {
		c.IdentityColumn = "Synapse Username"
	}
	c.TimestampColumn = strings.TrimSpace(os.Getenv("TIMESTAMP_COLUMN"))
	if c.TimestampColumn == "" {
		c.TimestampColumn = "Timestamp"
	}
	c.TeamColumn = strings.TrimSpace(os.Getenv("TEAM_COLUMN"))
	if c.TeamColumn == "" {
		c.TeamColumn = "Synapse Challenge Team"
	}

	c.InviteMessage = strings.TrimSpace(os.Getenv("INVITE_MESSAGE"))
	if c.InviteMessage == "" {
		c.InviteMessage = defaultInviteMessage
	}

	c.Notifier = strings.TrimSpace(os.Getenv("NOTIFIER"))
	if c.Notifier == "" {
		c.Notifier = "platform"
	}
	c.AdminAccountID = strings.TrimSpace(os.Getenv("ADMIN_ACCOUNT_ID"))
	c.TelegramToken = strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN"))
	c.AdminChatID = parseChatID(os.Getenv("ADMIN_TG_CHAT_ID"))

	c.RunMode = strings.TrimSpace(os.Getenv("RUN_MODE"))
	if c.RunMode == "" {
		c.RunMode = "once"
	}
	c.HTTPAddr = strings.TrimSpace(os.Getenv("HTTP_ADDR"))
	if c.HTTPAddr == "" {
		c.HTTPAddr = ":8080"
	}
	c.RunWebhookSecret = strings.TrimSpace(os.Getenv("RUN_WEBHOOK_SECRET"))
	if c.RunWebhookSecret == "" {
		c.RunWebhookSecret = "change-me"
	}

	if c.SynapseAuthToken == "" {
		return c, fmt.Errorf("SYNAPSE_AUTH_TOKEN is empty")
	}
	if c.RegistrationTeamID == "" {
		return c, fmt.Errorf("REGISTRATION_TEAM_ID is empty")
	}
	if c.DataAccessTeamID == "" {
		return c, fmt.Errorf("DATA_ACCESS_TEAM_ID is empty")
	}
	if c.ChallengeEntityID == "" {
		return c, fmt.Errorf("CHALLENGE_ENTITY_ID is empty")
	}
	switch c.ResponseSource {
	case "csv":
		if c.SheetCSVURL == "" {
			return c, fmt.Errorf("SHEET_CSV_URL is empty")
		}
	case "gsheet":
		if c.SpreadsheetID == "" {
			return c, fmt.Errorf("GOOGLE_SHEETS_SPREADSHEET_ID is empty")
		}
		if c.GoogleServiceAccountJSON == "" {
			return c, fmt.Errorf("GOOGLE_SERVICE_ACCOUNT_JSON is empty")
		}
	default:
		return c, fmt.Errorf("unknown response source: %s", c.ResponseSource)
	}
	if c.Notifier == "telegram" {
		if c.TelegramToken == "" {
			return c, fmt.Errorf("TELEGRAM_BOT_TOKEN is empty")
		}
		if c.AdminChatID == 0 {
			return c, fmt.Errorf("ADMIN_TG_CHAT_ID is empty")
		}
	}

	return c, nil
}

func parseChatID(raw string) int64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0
	}
	return v
}
