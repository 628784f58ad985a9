package store

const accountColumns = `account_id, email, password_hash, name, phone, age, gender, institution,
    skills, interests, completed_courses, created_at, updated_at`

const (
	createAccount = `INSERT INTO accounts (account_id, email, password_hash, name, phone, age, gender, institution,
    skills, interests, completed_courses, created_at, updated_at)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
    RETURNING ` + accountColumns + `;`

	findAccountByEmail = `SELECT ` + accountColumns + `
    FROM accounts
    WHERE email = $1;`

	findAccountByID = `SELECT ` + accountColumns + `
    FROM accounts
    WHERE account_id = $1;`

	updatePasswordHash = `UPDATE accounts
    SET password_hash = $1, updated_at = $2
    WHERE account_id = $3;`
)
