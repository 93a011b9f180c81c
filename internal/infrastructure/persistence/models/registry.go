package models

// All returns every persistence model in dependency order, for schema
// migration and test database setup.
func All() []any {
	return []any{
		&UserModel{},
		&StudentModel{},
		&AttendanceModel{},
		&JustificationModel{},
		&BudgetModel{},
		&BudgetLineModel{},
		&FeeBillModel{},
		&FeeItemModel{},
		&PaymentEntryModel{},
		&LedgerEntryModel{},
		&EmployeeModel{},
		&SalaryComponentModel{},
		&SalarySlipModel{},
		&SlipComponentModel{},
		&LeaveApplicationModel{},
		&MenuModel{},
		&MealOrderModel{},
		&RouteModel{},
		&StopModel{},
		&EnrollmentModel{},
		&HealthRecordModel{},
		&MedicalVisitModel{},
		&RemedialPlanModel{},
		&OrientationPlanModel{},
		&StreamChoiceModel{},
		&SessionModel{},
		&CommunicationLogModel{},
	}
}
