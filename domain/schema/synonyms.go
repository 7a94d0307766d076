package schema

// Synonym dictionaries: canonical field -> recognized real-world column-name
// variants, including Spanish spellings seen in production exports. Matching
// is case-, accent- and punctuation-insensitive, so only one spelling per
// shape is needed here. Kept as plain data so new locales extend the tables
// without touching the matching logic.

// addressComponentFields is the fixed composition order for building a
// fallback address out of partial address columns.
var addressComponentFields = []Field{
	FieldAddress,
	FieldPostcode,
	FieldCity,
	FieldProvince,
	FieldCountry,
}

// AddressComponentFields returns the address parts in composition order.
func AddressComponentFields() []Field {
	return addressComponentFields
}

var locationSynonyms = map[Field][]string{
	FieldLatitude:  {"latitude", "lat", "latitud"},
	FieldLongitude: {"longitude", "lon", "lng", "long", "longitud"},
	FieldAddress:   {"address", "direccion", "dirección", "street", "calle", "domicilio", "ubicacion", "ubicación", "location"},
	FieldPostcode:  {"postcode", "postal_code", "post code", "zip", "zipcode", "zip_code", "codigo postal", "código postal", "cp"},
	FieldCity:      {"city", "ciudad", "town", "localidad", "poblacion", "población", "municipio"},
	FieldProvince:  {"province", "provincia", "state", "region", "región"},
	FieldCountry:   {"country", "pais", "país"},
}

var jobSynonyms = map[Field][]string{
	FieldJobID:        {"job_id", "jobid", "job id", "job", "task_id", "order_id", "id trabajo", "id pedido", "numero pedido", "número pedido", "referencia", "ref pedido"},
	FieldDate:         {"date", "fecha", "day", "dia", "día", "delivery_date", "fecha entrega", "visit_date", "fecha visita", "scheduled_date", "fecha prevista"},
	FieldDurationMins: {"duration_mins", "duration", "duracion", "duración", "minutes", "mins", "duration_minutes", "service_time", "tiempo servicio", "tiempo"},
	FieldEntryTime:    {"entry_time", "entry", "entrada", "hora entrada", "hora de entrada", "window_start", "inicio ventana", "time_from", "desde", "start"},
	FieldExitTime:     {"exit_time", "exit", "salida", "hora salida", "hora de salida", "window_end", "fin ventana", "time_to", "hasta", "end"},
	FieldClientName:   {"client_name", "client", "cliente", "nombre cliente", "customer", "customer_name", "name", "nombre"},
	FieldDescription:  {"description", "descripcion", "descripción", "notes", "notas", "comments", "comentarios", "observaciones", "detail", "detalle"},
}

var salesmanSynonyms = map[Field][]string{
	FieldSalesmanID:   {"salesman_id", "salesmanid", "salesman id", "vendedor_id", "id vendedor", "worker_id", "employee_id", "driver_id", "tecnico_id", "técnico_id"},
	FieldSalesmanName: {"salesman_name", "salesman", "vendedor", "nombre vendedor", "comercial", "worker", "employee", "empleado", "driver", "tecnico", "técnico", "name", "nombre"},
	FieldStartTime:    {"start_time", "shift_start", "hora inicio", "inicio", "inicio jornada", "work_start", "entrada", "start", "from"},
	FieldEndTime:      {"end_time", "shift_end", "hora fin", "fin", "fin jornada", "work_end", "salida", "end", "to"},
}

// Field scan order per dataset type. Order matters twice: ID and time fields
// must claim their columns before the looser address/name synonyms get a
// chance to, and matching is first-match-wins per field.
var jobFieldOrder = []Field{
	FieldJobID,
	FieldDate,
	FieldDurationMins,
	FieldEntryTime,
	FieldExitTime,
	FieldLatitude,
	FieldLongitude,
	FieldAddress,
	FieldPostcode,
	FieldCity,
	FieldProvince,
	FieldCountry,
	FieldClientName,
	FieldDescription,
}

var salesmanFieldOrder = []Field{
	FieldSalesmanID,
	FieldStartTime,
	FieldEndTime,
	FieldLatitude,
	FieldLongitude,
	FieldAddress,
	FieldPostcode,
	FieldCity,
	FieldProvince,
	FieldCountry,
	FieldSalesmanName,
}

// FieldsFor returns the canonical fields of the given dataset type in
// deterministic scan order.
func FieldsFor(t DatasetType) []Field {
	switch t {
	case DatasetJob:
		return jobFieldOrder
	case DatasetSalesman:
		return salesmanFieldOrder
	default:
		return nil
	}
}

// SynonymsFor returns the synonym dictionary for one canonical field of the
// given dataset type. The canonical name itself always matches.
func SynonymsFor(t DatasetType, f Field) []string {
	if variants, ok := locationSynonyms[f]; ok {
		return variants
	}
	var dict map[Field][]string
	switch t {
	case DatasetJob:
		dict = jobSynonyms
	case DatasetSalesman:
		dict = salesmanSynonyms
	default:
		return nil
	}
	return dict[f]
}

// RequiredFieldsFor returns the fields whose presence identifies a dataset
// type during classification.
func RequiredFieldsFor(t DatasetType) []Field {
	switch t {
	case DatasetJob:
		return []Field{FieldEntryTime, FieldExitTime, FieldDurationMins}
	case DatasetSalesman:
		return []Field{FieldStartTime, FieldEndTime}
	default:
		return nil
	}
}

// IDFieldFor returns the ID-like field used as a classification tie-breaker.
func IDFieldFor(t DatasetType) Field {
	if t == DatasetSalesman {
		return FieldSalesmanID
	}
	return FieldJobID
}
