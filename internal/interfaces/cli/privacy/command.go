package privacy

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hhgcare/hhg/internal/application/privacy/usecases"
	"github.com/hhgcare/hhg/internal/domain/audit"
	"github.com/hhgcare/hhg/internal/infrastructure/crypto"
	"github.com/hhgcare/hhg/internal/infrastructure/database"
	"github.com/hhgcare/hhg/internal/infrastructure/repository"
	"github.com/hhgcare/hhg/internal/interfaces/cli/bootstrap"
	"github.com/hhgcare/hhg/internal/shared/db"
)

var (
	opts     bootstrap.Options
	phone    string
	operator string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "privacy",
		Short: "Patient privacy operations",
	}

	cmd.PersistentFlags().StringVarP(&opts.Env, "env", "e", "development", "Environment (development, test, production)")
	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")

	cmd.AddCommand(newDeletePatientDataCommand())

	return cmd
}

func newDeletePatientDataCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete-patient-data",
		Short: "Crypto-shred all data held for a phone number",
		Long: `Revoke the patient's data key and mark every booking and consent token
for the phone number as deleted. Encrypted fields become unreadable.`,
		RunE: runDeletePatientData,
	}

	cmd.Flags().StringVar(&phone, "phone", "", "Patient phone number (required)")
	cmd.Flags().StringVar(&operator, "operator", "cli", "Operator identifier recorded in the audit log")
	_ = cmd.MarkFlagRequired("phone")

	return cmd
}

func runDeletePatientData(cmd *cobra.Command, args []string) error {
	cfg, log, err := bootstrap.LoadWithDatabase(opts)
	if err != nil {
		return err
	}
	defer database.Close()

	masterKeys, err := crypto.DeriveMasterKeys(cfg.Privacy.MasterSecret)
	if err != nil {
		return fmt.Errorf("failed to derive privacy keys: %w", err)
	}

	gdb := database.Get()
	uc := usecases.NewDeletePatientDataUseCase(
		db.NewTransactionManager(gdb),
		crypto.NewHMACPhoneHasher(masterKeys.PhoneHashKey),
		crypto.NewKeyVault(repository.NewEncryptionKeyRepository(gdb), masterKeys.KEK, log.With("component", "key_vault")),
		repository.NewBookingRepository(gdb),
		repository.NewConsentTokenRepository(gdb, log.With("component", "consent_repository")),
		repository.NewDeletionRequestRepository(gdb),
		repository.NewAuditLogRepository(gdb, log.With("component", "audit_repository")),
		log.With("component", "privacy"),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	result, err := uc.Execute(ctx, usecases.DeletePatientDataCommand{
		RawPhone:    phone,
		RequestedBy: operator,
		ActorType:   audit.ActorOperator,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !result.Found {
		fmt.Fprintln(out, "No data found for this phone number.")
		return nil
	}
	fmt.Fprintf(out, "Deleted %d record(s).\n", result.DeletedCount)
	return nil
}
