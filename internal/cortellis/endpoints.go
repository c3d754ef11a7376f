package cortellis

// Vendor API path roots under the configured base URL. These are fixed
// surfaces owned by Cortellis, not by this server.
const (
	drugPath      = "/drugs-v2/drug"
	drugSWOTPath  = "/drugs-v2/drug/SWOTs"
	drugFinPath   = "/drugs-v2/drug/financial"
	companyPath   = "/company-v2/company"
	dealPath      = "/deals-v2/deal"
	ontologyPath  = "/ontologies-v1/taxonomy"
	defaultMethod = "GET"
)

// Endpoints resolves the per-intent base endpoints against a base URL.
type Endpoints struct {
	Drug     string
	DrugSWOT string
	DrugFin  string
	Company  string
	Deal     string
	Ontology string
}

// NewEndpoints builds the endpoint set for a base URL (no trailing slash).
func NewEndpoints(baseURL string) Endpoints {
	return Endpoints{
		Drug:     baseURL + drugPath,
		DrugSWOT: baseURL + drugSWOTPath,
		DrugFin:  baseURL + drugFinPath,
		Company:  baseURL + companyPath,
		Deal:     baseURL + dealPath,
		Ontology: baseURL + ontologyPath,
	}
}
