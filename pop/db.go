package pop

import "fmt"

const (
	// TblBest is the name of the sql database table that contains the best
	// candidate of every generation.
	TblBest = "popbest"
	// TblGen is the name of the sql database table that contains the
	// fitness key value of every rank of every generation.
	TblGen = "popgen"
)

func (p *Population) initdb() {
	if p.db == nil {
		return
	}

	s := "CREATE TABLE IF NOT EXISTS " + TblBest + " (gen INTEGER, keep INTEGER, failures INTEGER, maxerr REAL, maxloc REAL, rms REAL, c1 INTEGER, c2 REAL, c3 REAL);"
	_, err := p.db.Exec(s)
	panicif(err)

	s = "CREATE TABLE IF NOT EXISTS " + TblGen + " (gen INTEGER, rank INTEGER, val REAL);"
	_, err = p.db.Exec(s)
	panicif(err)
}

func (p *Population) updateDb(k int) (err error) {
	if p.db == nil {
		return nil
	}

	tx, err := p.db.Begin()
	if err != nil {
		return fmt.Errorf("pop: begin generation %v: %w", p.gen, err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	s0 := "INSERT INTO " + TblGen + " (gen,rank,val) VALUES (?,?,?);"
	for i, c := range p.cands {
		_, err = tx.Exec(s0, p.gen, i, float64(p.key.Value(c.Fitness)))
		if err != nil {
			return fmt.Errorf("pop: record generation %v: %w", p.gen, err)
		}
	}

	s1 := "INSERT INTO " + TblBest + " (gen,keep,failures,maxerr,maxloc,rms,c1,c2,c3) VALUES (?,?,?,?,?,?,?,?,?);"
	b := p.cands[0]
	_, err = tx.Exec(s1, p.gen, k, p.failures,
		float64(b.MaxError), float64(b.MaxErrorLoc), float64(b.RMSError),
		int64(b.C1), float64(b.C2), float64(b.C3))
	if err != nil {
		return fmt.Errorf("pop: record best of generation %v: %w", p.gen, err)
	}
	return nil
}

func panicif(err error) {
	if err != nil {
		panic(err.Error())
	}
}
