// @title TalentBridge API
// @version 1.0
// @description Onboarding, assessment and roadmap backend for TalentBridge.

// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"os"

	"talentbridge_backend/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
