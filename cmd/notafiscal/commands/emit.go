package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/jhoicas/nota-fiscal/internal/application/dto"
	"github.com/jhoicas/nota-fiscal/internal/application/issuing"
)

// unsetItem marca en --item un ítem sin valor asignado.
const unsetItem = "-"

func emitCmd() *cobra.Command {
	var (
		req      dto.IssueDocumentRequest
		items    []string
		issuedAt string
		pdfPath  string
		xmlPath  string
		reissue  bool
	)

	cmd := &cobra.Command{
		Use:   "emit",
		Short: "Construye y emite una nota fiscal",
		Example: `  notafiscal emit --kind product --tax-id 11.222.333/0001-81 \
    --legal-name "Balão Apagado SA" --item 500 --item 1000 --item 1500 \
    --notes "Esta nota fiscal foi construída com um construtor" --pdf nota.pdf`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := parseItems(items)
			if err != nil {
				return err
			}
			req.Items = parsed
			if issuedAt != "" {
				t, err := time.Parse(time.RFC3339, issuedAt)
				if err != nil {
					return fmt.Errorf("--issued-at: %w", err)
				}
				req.IssuedAt = &t
			}

			ctx := cmd.Context()
			issued, err := issuingUC.Issue(ctx, req)
			if err != nil {
				return err
			}
			out := []*issuing.Issued{issued}
			if reissue {
				copied, err := issuingUC.Reissue(ctx, issued)
				if err != nil {
					return err
				}
				out = append(out, copied)
			}

			for _, is := range out {
				if err := writeRenderings(cmd, is, pdfPath, xmlPath); err != nil {
					return err
				}
				if err := printSummary(cmd, is); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Kind, "kind", dto.DocumentKindProduct, "tipo de nota: product o service")
	cmd.Flags().StringVar(&req.TaxID, "tax-id", "", "CNPJ del emisor (por defecto ISSUER_TAX_ID)")
	cmd.Flags().StringVar(&req.LegalName, "legal-name", "", "razón social (por defecto ISSUER_LEGAL_NAME)")
	cmd.Flags().StringArrayVar(&items, "item", nil, `monto de un ítem; "-" para un ítem sin valor`)
	cmd.Flags().StringVar(&req.Notes, "notes", "", "observaciones")
	cmd.Flags().StringVar(&issuedAt, "issued-at", "", "fecha de emisión RFC3339 (por defecto ahora)")
	cmd.Flags().BoolVar(&req.Strict, "strict", false, "valida CNPJ y totales antes de emitir")
	cmd.Flags().StringVar(&pdfPath, "pdf", "", "escribe la representación PDF en este archivo")
	cmd.Flags().StringVar(&xmlPath, "xml", "", "escribe la representación XML en este archivo")
	cmd.Flags().BoolVar(&reissue, "reissue", false, "emite además una copia con nueva fecha de emisión")
	return cmd
}

func parseItems(raw []string) ([]dto.DocumentItemRequest, error) {
	out := make([]dto.DocumentItemRequest, 0, len(raw))
	for i, s := range raw {
		s = strings.TrimSpace(s)
		if s == unsetItem {
			out = append(out, dto.DocumentItemRequest{})
			continue
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return nil, fmt.Errorf("--item %d (%q): %w", i+1, s, err)
		}
		out = append(out, dto.DocumentItemRequest{Amount: &d})
	}
	return out, nil
}

// writeRenderings escribe PDF/XML; en una reemisión agrega el sufijo "-copia" al nombre.
func writeRenderings(cmd *cobra.Command, is *issuing.Issued, pdfPath, xmlPath string) error {
	if pdfPath != "" {
		b, err := issuingUC.RenderPDF(cmd.Context(), is)
		if err != nil {
			return err
		}
		if err := os.WriteFile(renderingPath(pdfPath, is), b, 0o644); err != nil {
			return fmt.Errorf("escribir PDF: %w", err)
		}
	}
	if xmlPath != "" {
		b, err := issuingUC.RenderXML(is)
		if err != nil {
			return err
		}
		if err := os.WriteFile(renderingPath(xmlPath, is), b, 0o644); err != nil {
			return fmt.Errorf("escribir XML: %w", err)
		}
	}
	return nil
}

func renderingPath(path string, is *issuing.Issued) string {
	if is.SourceID == "" {
		return path
	}
	if dot := strings.LastIndex(path, "."); dot > 0 {
		return path[:dot] + "-copia" + path[dot:]
	}
	return path + "-copia"
}

func printSummary(cmd *cobra.Command, is *issuing.Issued) error {
	resp, err := issuing.ToResponse(is)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s %s  total %s  impostos %s\n",
		resp.Kind, resp.ID, formatter.Currency(resp.TotalValue), formatter.Currency(resp.TaxAmount))
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}
