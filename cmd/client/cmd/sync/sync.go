package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"storesync/internal/app/client"
	"storesync/internal/domain/batch"
)

var (
	storeID     int64
	entityType  string
	direction   string
	forceSync   bool
	batchID     int64
	showRecords bool
	cancelBatch bool
	cleanupDays int
)

var SyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Запуск синхронизации и работа с пакетами",
	Long: `Синхронизация данных между центральным офисом и магазином.

Команда запускает обмен данными для магазина и типа сущности,
а также позволяет просматривать и отменять пакеты синхронизации.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := client.FromContext(cmd.Context())
		if err != nil {
			return err
		}

		if batchID > 0 {
			if cancelBatch {
				return runCancel(cmd.Context(), app, batchID)
			}
			return showBatch(cmd.Context(), app, batchID, showRecords)
		}

		if cleanupDays > 0 {
			return runCleanup(cmd.Context(), app, cleanupDays)
		}

		return runSync(cmd.Context(), app)
	},
}

func runSync(ctx context.Context, app *client.App) error {
	if storeID <= 0 {
		return fmt.Errorf("укажите магазин: --store")
	}
	if entityType == "" {
		return fmt.Errorf("укажите тип сущности: --entity")
	}

	fmt.Println("=== Синхронизация данных ===")

	fmt.Println("Проверка соединения с сервером...")
	if err := app.CheckConnection(); err != nil {
		return fmt.Errorf("сервер недоступен: %v", err)
	}

	start := time.Now()

	var batches []*batch.SyncBatch
	var err error

	switch direction {
	case "":
		batches, err = app.RunSync(ctx, storeID, entityType, forceSync)
	case "upload", "download":
		var b *batch.SyncBatch
		b, err = app.StartDirection(ctx, direction, storeID, entityType, forceSync)
		if b != nil {
			batches = []*batch.SyncBatch{b}
		}
	default:
		return fmt.Errorf("неизвестное направление: %s (upload или download)", direction)
	}

	if err != nil {
		return fmt.Errorf("ошибка синхронизации: %w", err)
	}

	duration := time.Since(start)

	fmt.Println()
	fmt.Println("✅ Синхронизация завершена!")
	fmt.Printf("Время выполнения: %v\n", duration.Round(time.Millisecond))

	for _, b := range batches {
		printBatch(b)
	}

	return nil
}

func showBatch(ctx context.Context, app *client.App, id int64, withRecords bool) error {
	b, err := app.GetBatch(ctx, id)
	if err != nil {
		return fmt.Errorf("ошибка получения пакета: %w", err)
	}

	fmt.Printf("=== Пакет #%d ===\n", b.ID)
	printBatch(b)

	if withRecords {
		records, err := app.ListBatchRecords(ctx, id)
		if err != nil {
			return fmt.Errorf("ошибка получения записей: %w", err)
		}

		fmt.Printf("\nЗаписи пакета (%d):\n", len(records))
		for _, rec := range records {
			mark := "✓"
			if !rec.IsSuccess {
				mark = "✗"
			}
			fmt.Printf("  %s сущность %d (%s)", mark, rec.EntityID,
				rec.RecordTimestamp.Format("2006-01-02 15:04:05"))
			if rec.ErrorText != "" {
				fmt.Printf(" — %s", rec.ErrorText)
			}
			fmt.Println()
		}
	}

	return nil
}

func runCancel(ctx context.Context, app *client.App, id int64) error {
	cancelled, err := app.CancelBatch(ctx, id)
	if err != nil {
		return fmt.Errorf("ошибка отмены пакета: %w", err)
	}

	if cancelled {
		fmt.Printf("✅ Пакет #%d отменен\n", id)
	} else {
		fmt.Printf("⚠️  Пакет #%d нельзя отменить: он уже запущен или завершен\n", id)
	}

	return nil
}

func runCleanup(ctx context.Context, app *client.App, days int) error {
	count, err := app.CleanupBatches(ctx, days)
	if err != nil {
		return fmt.Errorf("ошибка очистки пакетов: %w", err)
	}

	fmt.Printf("✅ Деактивировано пакетов старше %d дней: %d\n", days, count)
	return nil
}

func printBatch(b *batch.SyncBatch) {
	fmt.Printf("Пакет #%d: магазин %d, %s (%s)\n", b.ID, b.StoreID, b.EntityType, b.Direction)
	fmt.Printf("  Статус: %s\n", b.Status)
	fmt.Printf("  Записей: %d (успешно %d, с ошибками %d)\n",
		b.TotalRecords, b.SuccessRecords, b.FailedRecords)
	if b.ErrorMessage != "" {
		fmt.Printf("  Ошибка: %s\n", b.ErrorMessage)
	}
}

func init() {
	SyncCmd.Flags().Int64VarP(&storeID, "store", "s", 0, "идентификатор магазина")
	SyncCmd.Flags().StringVarP(&entityType, "entity", "e", "", "тип сущности (product, order, inventory, customer, price)")
	SyncCmd.Flags().StringVarP(&direction, "direction", "d", "", "направление (upload, download); по умолчанию по правилу")
	SyncCmd.Flags().BoolVarP(&forceSync, "force", "f", false, "запуск несмотря на выключенную синхронизацию")
	SyncCmd.Flags().Int64Var(&batchID, "batch", 0, "показать пакет по идентификатору")
	SyncCmd.Flags().BoolVar(&showRecords, "records", false, "показать записи пакета")
	SyncCmd.Flags().BoolVar(&cancelBatch, "cancel", false, "отменить пакет (вместе с --batch)")
	SyncCmd.Flags().IntVar(&cleanupDays, "cleanup", 0, "деактивировать завершенные пакеты старше N дней")
}
