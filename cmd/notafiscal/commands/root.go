// Package commands define la CLI notafiscal: emitir notas fiscales y leer su XML.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/jhoicas/nota-fiscal/internal/application/issuing"
	infrapdf "github.com/jhoicas/nota-fiscal/internal/infrastructure/pdf"
	"github.com/jhoicas/nota-fiscal/internal/infrastructure/xmldoc"
	"github.com/jhoicas/nota-fiscal/pkg/config"
	"github.com/jhoicas/nota-fiscal/pkg/logger"
	"github.com/jhoicas/nota-fiscal/pkg/money"
)

var (
	cfg       *config.Config
	log       *logger.Logger
	issuingUC *issuing.UseCase
	formatter *money.Formatter

	logLevel string
)

// Execute arma el comando raíz y lo ejecuta.
func Execute() error {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		if log != nil {
			log.Error().Err(err).Msg("comando fallido")
		}
		return err
	}
	return nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "notafiscal",
		Short:         "Emisión de notas fiscales de productos y servicios",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load()
			if err != nil {
				return err
			}
			level := cfg.Log.Level
			if logLevel != "" {
				level = logLevel
			}
			log = logger.New(logger.Config{Env: cfg.App.Env, Level: level})
			log.Debug().
				Str("env", cfg.App.Env).
				Str("app", cfg.App.Name).
				Msg("configuración cargada")

			formatter = money.NewFormatter(cfg.App.Locale)
			issuingUC = issuing.NewUseCase(issuing.Config{
				ProductRate:     cfg.Tax.ProductRate,
				ServiceRate:     cfg.Tax.ServiceRate,
				IssuerTaxID:     cfg.Issuer.TaxID,
				IssuerLegalName: cfg.Issuer.LegalName,
				Strict:          cfg.Issuer.Strict,
			}, log,
				issuing.WithPDFRenderer(infrapdf.NewMarotoPDFGenerator(formatter)),
				issuing.WithXMLRenderer(xmldoc.NewXMLRenderer()),
			)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "nivel de log (trace, debug, info, warn, error)")

	root.AddCommand(emitCmd(), inspectCmd())
	return root
}
