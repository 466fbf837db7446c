package services

import "onboarding/models"

// Column maps one export column to its source on the record. Placeholder is
// rendered when the source is empty; File columns read a file slot's URLs and
// Timestamp columns read the record's creation time.
type Column struct {
	Header      string
	Field       string
	File        bool
	Timestamp   bool
	Placeholder string
}

func field(header, name string) Column {
	return Column{Header: header, Field: name}
}

func fieldNA(header, name string) Column {
	return Column{Header: header, Field: name, Placeholder: "N/A"}
}

// doctorColumns is shared by Doctor and, with the amount column spliced in,
// Franchise.
var doctorColumns = []Column{
	field("First Name", "firstName"),
	field("Last Name", "lastName"),
	field("Email", "email"),
	field("Phone", "phone"),
	field("Address", "address"),
	field("City", "city"),
	field("State", "state"),
	field("Postal Code", "postalCode"),
	field("Registration Number", "registrationNumber"),
	field("Registration Council", "registrationCouncil"),
	field("Registration Year", "registrationYear"),
	field("Qualification", "qualification"),
	field("Year of Completion", "yearOfCompletion"),
	field("College/Institute", "collegeInstitute"),
	field("Years of Experience", "yearsOfExperience"),
	field("Specialty", "specialty"),
	field("Locality", "locality"),
	{Header: "Establishment", Field: "establishment", Placeholder: "Not specified"},
	field("City1", "city1"),
	field("State1", "state1"),
	field("Additional Notes", "additionalNotes"),
	{Header: "Aadhaar Card", Field: "aadharCard", Placeholder: "Not uploaded"},
	{Header: "PAN Card", Field: "panCard", File: true, Placeholder: "Not uploaded"},
	{Header: "Certificates", Field: "certificates", File: true, Placeholder: "Not uploaded"},
}

var exportColumns = map[models.Category][]Column{
	models.CategoryDoctor:    doctorColumns,
	models.CategoryFranchise: spliceAmount(doctorColumns),
	models.CategoryHospital: {
		field("First Name", "firstName"),
		field("Last Name", "lastName"),
		field("Email", "email"),
		field("Phone", "phone"),
		field("designation", "designation"),
		field("hospitalname", "hospitalname"),
		field("hospitaltype", "hospitaltype"),
		field("registrationNumber", "registrationNumber"),
		field("Accreditation", "Accreditation"),
		field("EstablishedYear", "EstablishedYear"),
		field("hospitaladd", "hospitaladd"),
		field("country", "country"),
		field("additionalNotes", "additionalNotes"),
	},
	models.CategoryLab: {
		field("Facility Name", "facilityName"),
		field("Facility Type", "facilityType"),
		field("Full Address", "fullAddress"),
		field("City/District", "cityDistrict"),
		field("State", "state"),
		fieldNA("Pincode", "pincode"),
		fieldNA("Google Maps Location", "googleMapsLocation"),
		fieldNA("Date of Establishment", "dateOfEstablishment"),
		field("Owner Name", "ownerName"),
		field("Designation", "designation"),
		field("Primary Mobile", "primaryMobile"),
		fieldNA("Alternate Contact", "alternateContact"),
		field("Email", "email"),
		fieldNA("Reception Number", "receptionNumber"),
		fieldNA("KYC Document Type", "kycDocumentType"),
		{Header: "KYC Document URL", Field: "kycDocument", File: true, Placeholder: "N/A"},
		field("Lab License Number", "labLicenseNumber"),
		field("Issuing Authority", "issuingAuthority"),
		fieldNA("License Valid Till", "licenseValidTill"),
		field("Lab Technician Name", "labTechnicianName"),
		field("Lab Technician License Number", "labTechnicianLicenseNumber"),
		field("NABL Accredited", "nablAccredited"),
		fieldNA("Other Certifications", "otherCertifications"),
		field("Biomedical Waste Agreement", "biomedicalWasteAgreement"),
		field("Operating Hours", "operatingHours"),
		field("Days of Operation", "daysOfOperation"),
		field("Home Collection Available", "homeCollectionAvailable"),
		fieldNA("Trained Phlebotomists", "trainedPhlebotomists"),
		field("Aayush Branded Kits", "aayushBrandedKits"),
		field("Radiology Services Available", "radiologyServicesAvailable"),
		fieldNA("Radiology Modalities", "radiologyModalities"),
		fieldNA("Special Diagnostics", "specialDiagnostics"),
		field("Daily Sample Capacity", "dailySampleCapacity"),
		field("Routine Test Turnaround", "routineTestTurnaround"),
		fieldNA("Radiology Report Turnaround", "radiologyReportTurnaround"),
		{Header: "Lab Rate Card URL", Field: "labRateCard", File: true, Placeholder: "N/A"},
		fieldNA("Additional Notes", "additionalNotes"),
		{Header: "Created At", Timestamp: true, Placeholder: "N/A"},
	},
	models.CategoryPathology: {
		field("First Name", "firstName"),
		field("Last Name", "lastName"),
		field("Email", "email"),
		field("Phone", "phone"),
		field("Address", "address"),
		field("City", "city"),
		field("State", "state"),
		field("Postal Code", "postalCode"),
		field("pathology name", "pathologyname"),
		field("year in operation", "yearinoperation"),
		field("website", "website"),
		field("owner name", "ownername"),
		field("designation", "designation"),
		field("phoneno", "phoneno"),
		field("emailid", "emailid"),
		field("Additional Notes", "additionalNotes"),
	},
	models.CategoryHealthAgent: {
		field("First Name", "firstName"),
		field("Last Name", "lastName"),
		field("Email", "email"),
		field("Phone", "phone"),
		field("Address", "address"),
		field("City", "city"),
		field("State", "state"),
		field("Postal Code", "postalCode"),
		field("occupation", "occupation"),
		field("workexp", "workexp"),
		field("Organizations", "Organizations"),
		field("qualification", "qualification"),
		field("yearOfCompletion", "yearOfCompletion"),
		field("collegeInstitute", "collegeInstitute"),
		field("Years of Experience", "yearsOfExperience"),
		field("Additional Notes", "additionalNotes"),
	},
}

func spliceAmount(cols []Column) []Column {
	out := make([]Column, 0, len(cols)+1)
	for _, c := range cols {
		out = append(out, c)
		if c.Field == "city1" {
			out = append(out, field("amount", "amount"))
		}
	}
	return out
}

// ColumnsFor returns the fixed export column list of a category.
func ColumnsFor(cat models.Category) []Column {
	return exportColumns[cat]
}
