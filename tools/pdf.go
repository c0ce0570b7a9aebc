package tools

import (
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// PDFInfo is the structural summary of an inspected PDF.
type PDFInfo struct {
	PageCount int    `json:"pageCount"`
	Version   string `json:"version"`
	HasImages bool   `json:"hasImages"`
}

// InspectPDF validates a PDF and reports page count, header version and
// whether it embeds image streams.
func InspectPDF(rs io.ReadSeeker) (*PDFInfo, error) {
	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(rs, conf)
	if err != nil {
		return nil, fmt.Errorf("tools: read pdf: %w", err)
	}

	info := &PDFInfo{
		PageCount: ctx.PageCount,
		HasImages: hasImageStreams(ctx),
	}
	if ctx.HeaderVersion != nil {
		info.Version = ctx.HeaderVersion.String()
	}
	return info, nil
}

// hasImageStreams scans the xref table for Image XObject streams.
func hasImageStreams(ctx *model.Context) bool {
	for _, entry := range ctx.Table {
		if entry == nil || entry.Object == nil {
			continue
		}
		sd, ok := entry.Object.(types.StreamDict)
		if !ok {
			continue
		}
		if subtype, found := sd.Find("Subtype"); found {
			if name, isName := subtype.(types.Name); isName && name == "Image" {
				return true
			}
		}
	}
	return false
}
