package db

// clinicMigrations holds the embedded clinic schema in apply order.
// Child tables cascade on parent delete so entity services never have to
// orchestrate child cleanup themselves.
var clinicMigrations = []Migration{
	{
		Version: 1,
		Name:    "create_sys_user",
		SQL: `
CREATE TABLE IF NOT EXISTS sys_user (
    user_id     BIGSERIAL PRIMARY KEY,
    username    VARCHAR(50) NOT NULL UNIQUE,
    password    VARCHAR(100) NOT NULL,
    user_name   VARCHAR(50),
    role        VARCHAR(20) NOT NULL CHECK (role IN ('ADMIN', 'DOCTOR')),
    phone       VARCHAR(20),
    status      INTEGER NOT NULL DEFAULT 1,
    create_time TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    update_time TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`,
	},
	{
		Version: 2,
		Name:    "create_drug",
		SQL: `
CREATE TABLE IF NOT EXISTS drug (
    drug_id       BIGSERIAL PRIMARY KEY,
    drug_name     VARCHAR(50) NOT NULL UNIQUE,
    specification VARCHAR(100) NOT NULL,
    price         NUMERIC(10,2) NOT NULL DEFAULT 0,
    stock         INTEGER NOT NULL DEFAULT 0,
    status        INTEGER NOT NULL DEFAULT 1,
    create_time   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    update_time   TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`,
	},
	{
		Version: 3,
		Name:    "create_patient",
		SQL: `
CREATE TABLE IF NOT EXISTS patient (
    patient_id   BIGSERIAL PRIMARY KEY,
    patient_name VARCHAR(50) NOT NULL,
    gender       VARCHAR(10),
    age          INTEGER,
    phone        VARCHAR(20),
    address      VARCHAR(200),
    remark       VARCHAR(200),
    doctor_id    BIGINT NOT NULL REFERENCES sys_user(user_id),
    create_time  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    update_time  TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`,
	},
	{
		Version: 4,
		Name:    "create_medical_case",
		SQL: `
CREATE TABLE IF NOT EXISTS medical_case (
    case_id     BIGSERIAL PRIMARY KEY,
    patient_id  BIGINT NOT NULL REFERENCES patient(patient_id) ON DELETE CASCADE,
    doctor_id   BIGINT NOT NULL REFERENCES sys_user(user_id),
    symptom     TEXT,
    diagnosis   TEXT,
    case_status VARCHAR(20) NOT NULL DEFAULT 'NEW'
        CHECK (case_status IN ('NEW', 'TREATING', 'PRESCRIBED', 'FINISHED')),
    visit_time  TIMESTAMPTZ,
    create_time TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    update_time TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`,
	},
	{
		Version: 5,
		Name:    "create_prescription",
		SQL: `
CREATE TABLE IF NOT EXISTS prescription (
    prescription_id BIGSERIAL PRIMARY KEY,
    case_id         BIGINT NOT NULL REFERENCES medical_case(case_id) ON DELETE CASCADE,
    doctor_id       BIGINT NOT NULL REFERENCES sys_user(user_id),
    total_amount    NUMERIC(10,2),
    create_time     TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`,
	},
	{
		Version: 6,
		Name:    "create_prescription_item",
		SQL: `
CREATE TABLE IF NOT EXISTS prescription_item (
    item_id         BIGSERIAL PRIMARY KEY,
    prescription_id BIGINT NOT NULL REFERENCES prescription(prescription_id) ON DELETE CASCADE,
    drug_id         BIGINT NOT NULL REFERENCES drug(drug_id),
    quantity        INTEGER NOT NULL CHECK (quantity > 0),
    usage_method    VARCHAR(200),
    price           NUMERIC(10,2)
)`,
	},
}
