/*
main.go

Copyright © 2025 Code Monkey Cybersecurity
Contact: git@cybermonkey.net.au

This file is part of tfl.

This software is dual-licensed under the Do No Harm License
and the GNU Affero General Public License v3 (AGPL-3.0-or-later).
You may use, modify, and distribute it under the terms of either license.

See LICENSE.agpl and LICENSE.dnh for full details.
*/
package main

import (
	"github.com/CodeMonkeyCybersecurity/tfl/cmd"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/logger"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/shared"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/telemetry"
	"go.uber.org/zap"
)

func main() {
	logger.InitializeWithFallback()
	log := logger.L()

	if err := telemetry.Init(shared.TflID); err != nil {
		log.Warn("Telemetry disabled", zap.Error(err))
	}
	log.Debug("Logger initialized", zap.String("version", shared.Version))

	cmd.Execute()
}
