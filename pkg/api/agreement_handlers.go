package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/ariahq/aria/pkg/httputil"
	"github.com/ariahq/aria/pkg/storage"
)

// AgreementHandlers serves the public legal-document routes
type AgreementHandlers struct {
	logger     *logrus.Logger
	agreements storage.AgreementRepository
}

// NewAgreementHandlers creates the agreement handler group
func NewAgreementHandlers(logger *logrus.Logger, agreements storage.AgreementRepository) *AgreementHandlers {
	return &AgreementHandlers{logger: logger, agreements: agreements}
}

// RegisterRoutes mounts the public agreement route
func (h *AgreementHandlers) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/agreement/{agreement_type}", h.getAgreement).Methods("GET")
}

func (h *AgreementHandlers) getAgreement(w http.ResponseWriter, r *http.Request) {
	agreementType := mux.Vars(r)["agreement_type"]

	agreement, err := h.agreements.GetActiveAgreement(r.Context(), agreementType)
	if err != nil {
		httputil.WriteAppError(w, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, agreement)
}
