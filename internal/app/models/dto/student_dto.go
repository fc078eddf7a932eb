package dto

import "encoding/json"

// CreateStudentRequest carries a fully-formed student payload. Required-field
// validation happens here at the API boundary; the repository relies on the
// store's constraints only.
type CreateStudentRequest struct {
	FirstName        string  `json:"firstName" binding:"required"`
	LastName         string  `json:"lastName" binding:"required"`
	Email            string  `json:"email" binding:"required,email"`
	Phone            *string `json:"phone"`
	EnrollmentNumber string  `json:"enrollmentNumber" binding:"required"`
	DateOfBirth      *string `json:"dateOfBirth"`
	Address          *string `json:"address"`
}

// UpdateStudentRequest carries a sparse update payload: only keys present
// in the request body are touched, absent keys keep their prior values. A
// key explicitly sent as null is present and writes SQL NULL, which is how
// an optional field gets cleared; a nil pointer alone cannot express that,
// so key presence is tracked separately during decoding.
type UpdateStudentRequest struct {
	FirstName        *string `json:"firstName"`
	LastName         *string `json:"lastName"`
	Email            *string `json:"email" binding:"omitempty,email"`
	Phone            *string `json:"phone"`
	EnrollmentNumber *string `json:"enrollmentNumber"`
	DateOfBirth      *string `json:"dateOfBirth"`
	Address          *string `json:"address"`

	presentKeys map[string]struct{}
}

// UnmarshalJSON decodes the payload and records which keys the body
// actually contained.
func (r *UpdateStudentRequest) UnmarshalJSON(data []byte) error {
	type alias UpdateStudentRequest
	var decoded alias
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*r = UpdateStudentRequest(decoded)
	r.presentKeys = make(map[string]struct{}, len(raw))
	for key := range raw {
		r.presentKeys[key] = struct{}{}
	}
	return nil
}

// Fields flattens the sparse payload into a column-value map covering
// exactly the keys the caller supplied. Present-null keys map to a nil
// value.
func (r *UpdateStudentRequest) Fields() map[string]interface{} {
	fields := make(map[string]interface{})
	collect := func(key string, value *string) {
		if value != nil {
			fields[key] = *value
			return
		}
		if _, ok := r.presentKeys[key]; ok {
			fields[key] = nil
		}
	}

	collect("firstName", r.FirstName)
	collect("lastName", r.LastName)
	collect("email", r.Email)
	collect("phone", r.Phone)
	collect("enrollmentNumber", r.EnrollmentNumber)
	collect("dateOfBirth", r.DateOfBirth)
	collect("address", r.Address)
	return fields
}
