package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/nota-fiscal/internal/domain/fiscal"
	"github.com/jhoicas/nota-fiscal/internal/infrastructure/xmldoc"
)

func inspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [archivo.xml]",
		Short: "Lee el XML de una nota y verifica su huella",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			parsed, err := xmldoc.Parse(data)
			if err != nil {
				return err
			}
			doc := parsed.Document

			total, err := doc.TotalValue()
			if err != nil {
				return err
			}
			digest, err := fiscal.Digest(doc)
			if err != nil {
				return err
			}
			status := "ok"
			switch {
			case !parsed.TotalValue.Equal(total):
				status = "TOTAL NO COINCIDE"
			case parsed.Digest == "":
				status = "sin huella"
			case parsed.Digest != digest:
				status = "NO COINCIDE"
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Emitente:  %s (%s)\n", doc.LegalName, doc.TaxID)
			fmt.Fprintf(w, "Emissão:   %s\n", doc.IssuedAt.Format("02/01/2006 15:04:05"))
			fmt.Fprintf(w, "Itens:     %d\n", doc.Items.Len())
			fmt.Fprintf(w, "Total:     %s\n", formatter.Currency(total))
			fmt.Fprintf(w, "Impostos:  %s\n", formatter.Currency(doc.TaxAmount))
			fmt.Fprintf(w, "Huella:    %s\n", status)

			log.Debug().Str("file", args[0]).Str("digest_status", status).Msg("nota inspeccionada")
			switch status {
			case "ok":
			case "sin huella":
				return fmt.Errorf("%s no tiene huella: no se puede verificar", args[0])
			case "TOTAL NO COINCIDE":
				return fmt.Errorf("ValorTotal de %s (%s) no coincide con la suma de los ítems (%s)",
					args[0], parsed.TotalValue.StringFixed(2), total.StringFixed(2))
			default:
				return fmt.Errorf("huella de %s no coincide con su contenido", args[0])
			}
			return nil
		},
	}
}
