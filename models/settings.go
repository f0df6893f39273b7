package models

import "time"

// AISettingsName is the lookup key of the single AI credentials row. The name
// predates the switch of inference provider and is kept so existing rows resolve.
const AISettingsName = "OpenAI Settings"

// SettingsAPI holds credentials for the generative model endpoint.
type SettingsAPI struct {
	Name           string    `bson:"name" json:"name"`
	APIKey         string    `bson:"api_key" json:"apiKey,omitempty"`
	OrganizationID string    `bson:"organization_id" json:"organizationId"`
	UpdatedAt      time.Time `bson:"updatedAt" json:"updatedAt"`
}
