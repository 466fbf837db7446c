package models

// Compiled-in category schemas. Field order matches the intake forms;
// collection names match the Mongo collections the records live in.

func text(name string, required bool) FieldSpec {
	return FieldSpec{Name: name, Type: FieldText, Required: required}
}

func number(name string, required bool) FieldSpec {
	return FieldSpec{Name: name, Type: FieldNumber, Required: required}
}

func date(name string, required bool) FieldSpec {
	return FieldSpec{Name: name, Type: FieldDate, Required: required}
}

func choice(name string, required bool, allowed ...string) FieldSpec {
	return FieldSpec{Name: name, Type: FieldChoice, Required: required, Allowed: allowed}
}

var yesNo = []string{"Yes", "No"}

// panCard/certificates are shared by every category except Lab, which has its
// own two mandatory document slots.
func panCardSlot(required bool) FileSlotSpec {
	return FileSlotSpec{Name: "panCard", Folder: "pan_cards", MaxCount: 1, Required: required}
}

func certificatesSlot() FileSlotSpec {
	return FileSlotSpec{Name: "certificates", Folder: "certificates", MaxCount: 5}
}

var schemas = []Schema{
	{
		Category:    CategoryDoctor,
		DisplayName: "Doctor",
		RoutePath:   "doctors",
		Collection:  "Doctor",
		SheetName:   "Doctors",
		ExportFile:  "doctors.xlsx",
		Fields: []FieldSpec{
			text("firstName", true),
			text("lastName", true),
			text("email", true),
			text("phone", true),
			text("address", false),
			text("city", false),
			text("state", false),
			text("postalCode", false),
			text("registrationNumber", true),
			text("registrationCouncil", true),
			number("registrationYear", true),
			text("qualification", true),
			number("yearOfCompletion", true),
			text("collegeInstitute", true),
			number("yearsOfExperience", true),
			text("specialty", false),
			text("locality", false),
			text("additionalNotes", false),
			choice("establishment", false, "I own an establishment", "I visit an establishment"),
			text("city1", false),
			text("state1", false),
		},
		FileSlots: []FileSlotSpec{panCardSlot(true), certificatesSlot()},
	},
	{
		Category:    CategoryFranchise,
		DisplayName: "Franchise",
		RoutePath:   "franchise",
		Collection:  "Franchise",
		SheetName:   "Franchise",
		ExportFile:  "franchise.xlsx",
		Fields: []FieldSpec{
			text("firstName", true),
			text("lastName", true),
			text("email", true),
			text("phone", true),
			text("address", false),
			text("city", false),
			text("state", false),
			text("postalCode", false),
			text("registrationNumber", true),
			text("registrationCouncil", true),
			number("registrationYear", true),
			text("qualification", true),
			number("yearOfCompletion", true),
			text("collegeInstitute", true),
			number("yearsOfExperience", true),
			text("specialty", false),
			text("locality", false),
			text("additionalNotes", false),
			choice("establishment", false, "yes", "no"),
			text("city1", false),
			text("amount", true),
			text("state1", false),
		},
		FileSlots: []FileSlotSpec{panCardSlot(true), certificatesSlot()},
	},
	{
		Category:    CategoryHospital,
		DisplayName: "Hospital",
		RoutePath:   "hospital",
		Collection:  "Hospital",
		SheetName:   "Hospital",
		ExportFile:  "hospital.xlsx",
		Fields: []FieldSpec{
			text("firstName", true),
			text("lastName", true),
			text("email", true),
			text("phone", true),
			text("designation", false),
			text("hospitalname", true),
			text("hospitaltype", true),
			text("registrationNumber", true),
			text("Accreditation", false),
			number("EstablishedYear", false),
			text("hospitaladd", false),
			text("country", false),
			text("additionalNotes", false),
		},
		FileSlots: []FileSlotSpec{panCardSlot(false), certificatesSlot()},
	},
	{
		Category:    CategoryLab,
		DisplayName: "Lab",
		RoutePath:   "lab",
		Collection:  "Lab",
		SheetName:   "Labs",
		ExportFile:  "labs.xlsx",
		Fields: []FieldSpec{
			text("facilityName", true),
			choice("facilityType", true, "Lab", "Diagnostic", "Radiology", "Multi-specialty"),
			text("fullAddress", true),
			text("cityDistrict", true),
			text("state", true),
			text("pincode", true),
			text("googleMapsLocation", false),
			date("dateOfEstablishment", true),
			text("ownerName", true),
			text("designation", true),
			text("primaryMobile", true),
			text("alternateContact", false),
			text("email", true),
			text("receptionNumber", false),
			text("kycDocumentType", true),
			text("labLicenseNumber", true),
			text("issuingAuthority", true),
			date("licenseValidTill", true),
			text("labTechnicianName", true),
			text("labTechnicianLicenseNumber", true),
			choice("nablAccredited", true, yesNo...),
			text("otherCertifications", false),
			choice("biomedicalWasteAgreement", true, yesNo...),
			text("operatingHours", true),
			text("daysOfOperation", true),
			choice("homeCollectionAvailable", true, yesNo...),
			number("trainedPhlebotomists", false),
			choice("aayushBrandedKits", true, yesNo...),
			choice("radiologyServicesAvailable", true, yesNo...),
			text("radiologyModalities", false),
			text("specialDiagnostics", false),
			text("dailySampleCapacity", true),
			text("routineTestTurnaround", true),
			text("radiologyReportTurnaround", false),
			text("additionalNotes", false),
		},
		FileSlots: []FileSlotSpec{
			{
				Name:         "kycDocument",
				Folder:       "lab-documents",
				MaxCount:     1,
				Required:     true,
				ContentTypes: []string{"image/jpeg", "image/png", "application/pdf"},
			},
			{
				Name:     "labRateCard",
				Folder:   "lab-documents",
				MaxCount: 1,
				Required: true,
				ContentTypes: []string{
					"image/jpeg",
					"image/png",
					"application/pdf",
					"application/msword",
					"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
				},
			},
		},
	},
	{
		Category:    CategoryPathology,
		DisplayName: "Pathology",
		RoutePath:   "pathology",
		Collection:  "Pathology",
		SheetName:   "Pathology",
		ExportFile:  "pathology.xlsx",
		Fields: []FieldSpec{
			text("firstName", true),
			text("lastName", true),
			text("email", true),
			text("phone", true),
			text("address", false),
			text("city", false),
			text("state", false),
			text("postalCode", false),
			text("pathologyname", true),
			text("yearinoperation", true),
			text("website", false),
			text("ownername", true),
			text("designation", true),
			text("phoneno", false),
			text("emailid", false),
			text("additionalNotes", false),
		},
		FileSlots: []FileSlotSpec{panCardSlot(true), certificatesSlot()},
	},
	{
		Category:    CategoryHealthAgent,
		DisplayName: "Health Agent",
		RoutePath:   "healthagent",
		Collection:  "Healthagent",
		SheetName:   "Healthagent",
		ExportFile:  "healthagent.xlsx",
		Fields: []FieldSpec{
			text("firstName", true),
			text("lastName", true),
			text("email", true),
			text("phone", true),
			text("address", false),
			text("city", false),
			text("state", false),
			text("postalCode", false),
			text("occupation", true),
			text("workexp", true),
			text("Organizations", false),
			text("qualification", true),
			number("yearOfCompletion", false),
			text("collegeInstitute", false),
			number("yearsOfExperience", true),
			text("additionalNotes", false),
		},
		FileSlots: []FileSlotSpec{panCardSlot(true), certificatesSlot()},
	},
}

// AllSchemas returns every category schema in registration order.
func AllSchemas() []Schema {
	return schemas
}

// SchemaFor looks up the schema of a category.
func SchemaFor(cat Category) (Schema, bool) {
	for _, s := range schemas {
		if s.Category == cat {
			return s, true
		}
	}
	return Schema{}, false
}
