// cmd/client/cmd/init.go
package cmd

import (
	"storesync/cmd/client/cmd/configure"
	"storesync/cmd/client/cmd/conflict"
	"storesync/cmd/client/cmd/dashboard"
	"storesync/cmd/client/cmd/logs"
	"storesync/cmd/client/cmd/sync"
)

func init() {
	// Команды настройки синхронизации
	rootCmd.AddCommand(configure.ConfigureCmd)
	configure.ConfigureCmd.AddCommand(configure.CreateCmd)
	configure.ConfigureCmd.AddCommand(configure.ShowCmd)
	configure.ConfigureCmd.AddCommand(configure.EnableCmd)
	configure.ConfigureCmd.AddCommand(configure.DisableCmd)
	configure.ConfigureCmd.AddCommand(configure.AddRuleCmd)
	configure.ConfigureCmd.AddCommand(configure.EnableRuleCmd)
	configure.ConfigureCmd.AddCommand(configure.DisableRuleCmd)
	configure.ConfigureCmd.AddCommand(configure.RulesCmd)

	// Команды запуска синхронизации и работы с пакетами
	rootCmd.AddCommand(sync.SyncCmd)

	// Команды разрешения конфликтов
	rootCmd.AddCommand(conflict.ConflictCmd)
	conflict.ConflictCmd.AddCommand(conflict.ListCmd)
	conflict.ConflictCmd.AddCommand(conflict.ResolveCmd)
	conflict.ConflictCmd.AddCommand(conflict.BulkResolveCmd)

	// Журнал операций
	rootCmd.AddCommand(logs.LogsCmd)

	// Панель мониторинга
	rootCmd.AddCommand(dashboard.DashboardCmd)
}
