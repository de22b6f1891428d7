package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/healthtrack/healthtrack/internal/domain/documents"
	"github.com/healthtrack/healthtrack/pkg/pagination"
)

func documentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "documents",
		Aliases: []string{"docs"},
		Short:   "Browse and upload medical documents",
	}
	cmd.AddCommand(
		documentsListCmd(),
		documentsSearchCmd(),
		documentsGetCmd(),
		documentsUploadCmd(),
		documentsUpdateCmd(),
		documentsDeleteCmd(),
	)
	return cmd
}

func documentsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			a.warnIfExpiring(cmd.Context())

			docType, _ := cmd.Flags().GetString("type")
			status, _ := cmd.Flags().GetString("status")
			limit, _ := cmd.Flags().GetInt("limit")
			offset, _ := cmd.Flags().GetInt("offset")

			docs := documents.NewClient(a.api)
			res, err := load(cmd.Context(), a, func(ctx context.Context) ([]documents.Document, error) {
				items, _, err := docs.List(ctx, documents.Filter{
					Type:   docType,
					Status: status,
					Page:   pagination.Params{Limit: limit, Offset: offset},
				})
				return items, err
			}, documents.Sample())
			if err != nil {
				return err
			}

			disclose(res, "documents")
			printDocuments(res.Data)
			return nil
		},
	}
	cmd.Flags().String("type", "", "Filter by document type")
	cmd.Flags().String("status", "", "Filter by processing status")
	cmd.Flags().Int("limit", pagination.DefaultLimit, "Page size")
	cmd.Flags().Int("offset", 0, "Page offset")
	return cmd
}

func documentsSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Full-text search over documents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			a.warnIfExpiring(cmd.Context())

			docs := documents.NewClient(a.api)
			items, total, err := docs.Search(cmd.Context(), args[0], pagination.Params{})
			if err != nil {
				return err
			}
			fmt.Printf("%d match(es)\n\n", total)
			printDocuments(items)
			return nil
		},
	}
}

func documentsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid document id: %w", err)
			}

			doc, err := documents.NewClient(a.api).Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Printf("%s\n  Type:   %s\n  Status: %s\n  Date:   %s\n  Source: %s\n",
				doc.Filename, documents.TypeLabel(doc.Type), doc.Status,
				doc.Date.Format("2006-01-02"), doc.Source)
			if doc.Summary != nil {
				fmt.Printf("  Summary: %s\n", *doc.Summary)
			}
			return nil
		},
	}
}

func documentsUploadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload <path>",
		Short: "Upload a document for processing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			docType, _ := cmd.Flags().GetString("type")

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			doc, err := documents.NewClient(a.api).Upload(cmd.Context(), filepath.Base(args[0]), f, docType)
			if err != nil {
				return err
			}
			fmt.Printf("Uploaded %s (%s). Processing status: %s\n", doc.Filename, doc.ID, doc.Status)
			return nil
		},
	}
	cmd.Flags().String("type", "", "Document type (lab_result, prescription, imaging_report, other)")
	return cmd
}

func documentsUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update document metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid document id: %w", err)
			}

			var meta documents.Metadata
			if cmd.Flags().Changed("filename") {
				v, _ := cmd.Flags().GetString("filename")
				meta.Filename = &v
			}
			if cmd.Flags().Changed("type") {
				v, _ := cmd.Flags().GetString("type")
				meta.Type = &v
			}
			if cmd.Flags().Changed("source") {
				v, _ := cmd.Flags().GetString("source")
				meta.Source = &v
			}
			if meta == (documents.Metadata{}) {
				return fmt.Errorf("nothing to update; pass at least one of --filename, --type, --source")
			}

			doc, err := documents.NewClient(a.api).UpdateMetadata(cmd.Context(), id, meta)
			if err != nil {
				return err
			}
			fmt.Printf("Updated %s\n", doc.Filename)
			return nil
		},
	}
	cmd.Flags().String("filename", "", "New filename")
	cmd.Flags().String("type", "", "New document type")
	cmd.Flags().String("source", "", "New source")
	return cmd
}

func documentsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid document id: %w", err)
			}
			if err := documents.NewClient(a.api).Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Println("Deleted.")
			return nil
		},
	}
}

func printDocuments(docs []documents.Document) {
	if len(docs) == 0 {
		fmt.Println("No documents.")
		return
	}
	fmt.Printf("%-36s %-28s %-15s %-10s %s\n", "ID", "FILENAME", "TYPE", "STATUS", "DATE")
	for _, d := range docs {
		fmt.Printf("%-36s %-28s %-15s %-10s %s\n",
			d.ID, d.Filename, documents.TypeLabel(d.Type), d.Status, d.Date.Format("2006-01-02"))
	}
}
