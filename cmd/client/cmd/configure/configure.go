package configure

import (
	"fmt"

	"github.com/spf13/cobra"

	"storesync/internal/app/client"
	"storesync/internal/domain/syncconfig"
)

var (
	storeID         int64
	intervalSeconds int
	maxBatchSize    int
	startDisabled   bool
	configID        int64
	ruleID          int64
	ruleEntity      string
	ruleDirection   string
	rulePolicy      string
	rulePriority    int
)

var ConfigureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Настройка синхронизации магазинов",
	Long: `Управление конфигурациями синхронизации и правилами по типам сущностей.

Конфигурация задает интервал и размер пакета для магазина; правила
определяют направление и политику конфликтов для каждого типа сущности.`,
}

var CreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Создать конфигурацию магазина",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := client.FromContext(cmd.Context())
		if err != nil {
			return err
		}

		if storeID <= 0 {
			return fmt.Errorf("укажите магазин: --store")
		}

		cfg, err := app.CreateConfig(cmd.Context(), syncconfig.CreateParams{
			StoreID:             storeID,
			SyncIntervalSeconds: intervalSeconds,
			MaxBatchSize:        maxBatchSize,
			IsEnabled:           !startDisabled,
		})
		if err != nil {
			return fmt.Errorf("ошибка создания конфигурации: %w", err)
		}

		fmt.Printf("✅ Конфигурация #%d создана для магазина %d\n", cfg.ID, cfg.StoreID)
		fmt.Printf("  Интервал: %d сек, размер пакета: %d, включена: %v\n",
			cfg.SyncIntervalSeconds, cfg.MaxBatchSize, cfg.IsEnabled)

		return nil
	},
}

var ShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Показать конфигурацию магазина",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := client.FromContext(cmd.Context())
		if err != nil {
			return err
		}

		if storeID <= 0 {
			return fmt.Errorf("укажите магазин: --store")
		}

		cfg, err := app.GetConfig(cmd.Context(), storeID)
		if err != nil {
			return fmt.Errorf("ошибка получения конфигурации: %w", err)
		}

		fmt.Printf("=== Конфигурация магазина %d ===\n", cfg.StoreID)
		fmt.Printf("ID: %d\n", cfg.ID)
		fmt.Printf("Интервал: %d сек\n", cfg.SyncIntervalSeconds)
		fmt.Printf("Размер пакета: %d\n", cfg.MaxBatchSize)
		fmt.Printf("Включена: %v\n", cfg.IsEnabled)
		if cfg.LastSuccessfulSync != nil {
			fmt.Printf("Последняя успешная синхронизация: %s\n",
				cfg.LastSuccessfulSync.Format("2006-01-02 15:04:05"))
		} else {
			fmt.Println("Последняя успешная синхронизация: никогда")
		}

		return nil
	},
}

var EnableCmd = &cobra.Command{
	Use:   "enable",
	Short: "Включить синхронизацию магазина",
	RunE: func(cmd *cobra.Command, args []string) error {
		return setEnabled(cmd, true)
	},
}

var DisableCmd = &cobra.Command{
	Use:   "disable",
	Short: "Выключить синхронизацию магазина",
	RunE: func(cmd *cobra.Command, args []string) error {
		return setEnabled(cmd, false)
	},
}

func setEnabled(cmd *cobra.Command, enabled bool) error {
	app, err := client.FromContext(cmd.Context())
	if err != nil {
		return err
	}

	if storeID <= 0 {
		return fmt.Errorf("укажите магазин: --store")
	}

	if err := app.SetEnabled(cmd.Context(), storeID, enabled); err != nil {
		return fmt.Errorf("ошибка изменения конфигурации: %w", err)
	}

	if enabled {
		fmt.Printf("✅ Синхронизация магазина %d включена\n", storeID)
	} else {
		fmt.Printf("✅ Синхронизация магазина %d выключена\n", storeID)
	}

	return nil
}

var AddRuleCmd = &cobra.Command{
	Use:   "add-rule",
	Short: "Добавить правило для типа сущности",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := client.FromContext(cmd.Context())
		if err != nil {
			return err
		}

		if configID <= 0 {
			return fmt.Errorf("укажите конфигурацию: --config-id")
		}

		rule, err := app.AddRule(cmd.Context(), configID, ruleEntity, ruleDirection, rulePolicy, rulePriority)
		if err != nil {
			return fmt.Errorf("ошибка добавления правила: %w", err)
		}

		fmt.Printf("✅ Правило #%d добавлено: %s, %s, политика %s, приоритет %d\n",
			rule.ID, rule.EntityType, rule.Direction, rule.ConflictPolicy, rule.Priority)

		return nil
	},
}

var EnableRuleCmd = &cobra.Command{
	Use:   "enable-rule",
	Short: "Включить правило синхронизации",
	RunE: func(cmd *cobra.Command, args []string) error {
		return setRuleEnabled(cmd, true)
	},
}

var DisableRuleCmd = &cobra.Command{
	Use:   "disable-rule",
	Short: "Выключить правило синхронизации",
	RunE: func(cmd *cobra.Command, args []string) error {
		return setRuleEnabled(cmd, false)
	},
}

func setRuleEnabled(cmd *cobra.Command, enabled bool) error {
	app, err := client.FromContext(cmd.Context())
	if err != nil {
		return err
	}

	if ruleID <= 0 {
		return fmt.Errorf("укажите правило: --rule")
	}

	if err := app.SetRuleEnabled(cmd.Context(), ruleID, enabled); err != nil {
		return fmt.Errorf("ошибка изменения правила: %w", err)
	}

	if enabled {
		fmt.Printf("✅ Правило #%d включено\n", ruleID)
	} else {
		fmt.Printf("✅ Правило #%d выключено\n", ruleID)
	}

	return nil
}

var RulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Показать правила конфигурации",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := client.FromContext(cmd.Context())
		if err != nil {
			return err
		}

		if configID <= 0 {
			return fmt.Errorf("укажите конфигурацию: --config-id")
		}

		rules, err := app.ListRules(cmd.Context(), configID)
		if err != nil {
			return fmt.Errorf("ошибка получения правил: %w", err)
		}

		if len(rules) == 0 {
			fmt.Println("Правила не настроены: действуют направление bidirectional и политика manual")
			return nil
		}

		fmt.Printf("Правила конфигурации %d:\n", configID)
		for _, r := range rules {
			state := "включено"
			if !r.IsEnabled {
				state = "выключено"
			}
			fmt.Printf("  #%d %s: %s, политика %s, приоритет %d (%s)\n",
				r.ID, r.EntityType, r.Direction, r.ConflictPolicy, r.Priority, state)
		}

		return nil
	},
}

func init() {
	ConfigureCmd.PersistentFlags().Int64VarP(&storeID, "store", "s", 0, "идентификатор магазина")
	ConfigureCmd.PersistentFlags().Int64Var(&configID, "config-id", 0, "идентификатор конфигурации")

	CreateCmd.Flags().IntVar(&intervalSeconds, "interval", 300, "интервал синхронизации в секундах")
	CreateCmd.Flags().IntVar(&maxBatchSize, "batch-size", 500, "максимальный размер пакета")
	CreateCmd.Flags().BoolVar(&startDisabled, "disabled", false, "создать выключенной")

	AddRuleCmd.Flags().StringVarP(&ruleEntity, "entity", "e", "", "тип сущности (product, order, inventory, customer, price)")
	AddRuleCmd.Flags().StringVarP(&ruleDirection, "direction", "d", "bidirectional", "направление (upload, download, bidirectional)")
	AddRuleCmd.Flags().StringVarP(&rulePolicy, "policy", "p", "manual", "политика конфликтов (hq_wins, store_wins, manual)")
	AddRuleCmd.Flags().IntVar(&rulePriority, "priority", 0, "приоритет правила")

	EnableRuleCmd.Flags().Int64Var(&ruleID, "rule", 0, "идентификатор правила")
	DisableRuleCmd.Flags().Int64Var(&ruleID, "rule", 0, "идентификатор правила")
}
