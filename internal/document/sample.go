package document

import (
	"fmt"
	"time"

	"github.com/samber/lo"
)

// Sample builds the demonstration document used by `crptctl submit` when no
// file is given. Every field is filled with a placeholder named after itself and
// every date is set to today.
func Sample(now time.Time) *Document {
	return SampleWithProducts(now, 1)
}

// SampleWithProducts builds the demonstration document with n products. The
// first product uses the plain placeholders; later ones get an index suffix.
func SampleWithProducts(now time.Time, n int) *Document {
	today := DateOf(now)

	return &Document{
		Description:    &Description{ParticipantInn: "ParticipantInn"},
		DocID:          "DocId",
		DocStatus:      "DocStatus",
		DocType:        DocTypeIntroduceGoods,
		ImportRequest:  true,
		OwnerInn:       "OwnerInn",
		ParticipantInn: "ParticipantInn",
		ProducerInn:    "ProducerInn",
		ProductionDate: today,
		ProductionType: "ProductionType",
		Products: lo.Times(n, func(i int) Product {
			suffix := ""
			if i > 0 {
				suffix = fmt.Sprintf("-%d", i)
			}
			return Product{
				CertificateDocument:       "CertificateDocument" + suffix,
				CertificateDocumentDate:   today,
				CertificateDocumentNumber: "CertificateDocumentNumber" + suffix,
				OwnerInn:                  "OwnerInn",
				ProducerInn:               "ProducerInn",
				ProductionDate:            today,
				TnvedCode:                 "TnvedCode",
				UitCode:                   "UitCode" + suffix,
				UituCode:                  "UituCode" + suffix,
			}
		}),
		RegDate:   today,
		RegNumber: "RegNumber",
	}
}
