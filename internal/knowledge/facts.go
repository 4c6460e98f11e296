package knowledge

import "fmt"

type seedFact struct {
	category string
	subject  string
	text     string
}

// defaultFacts es el conocimiento financiero base. El orden dentro de cada
// categoría es el que verá el modelo.
var defaultFacts = []seedFact{
	// principios
	{"investment-principle", "diversification", "Diversify across asset classes to reduce risk. Don't put all eggs in one basket."},
	{"investment-principle", "compounding", "Start early to maximize compound growth. Time in market beats timing the market."},
	{"investment-principle", "risk-return", "Higher potential returns come with higher risk. Match investments to risk tolerance."},
	{"investment-principle", "dollar-cost-averaging", "Invest fixed amounts regularly to average out market volatility."},
	{"investment-principle", "emergency-fund", "Keep 6 months expenses in savings before aggressive investing."},

	{"asset-class", "stocks", "Stocks offer growth potential with moderate-high risk. Historical 8-10% annual returns."},
	{"asset-class", "bonds", "Bonds provide stability with lower returns. Good for conservative portfolios."},
	{"asset-class", "crypto", "Cryptocurrencies are high-risk, high-reward speculative assets. Very volatile."},
	{"asset-class", "index-funds", "Index funds track market indices. Low fees, broad diversification, consistent returns."},
	{"asset-class", "real-estate", "Real estate offers tangible assets with rental income. Requires significant capital."},

	{"volatility", "Bitcoin", "Bitcoin annualized volatility: 60%."},
	{"volatility", "Ethereum", "Ethereum annualized volatility: 65%."},
	{"volatility", "Solana", "Solana annualized volatility: 70%."},
	{"volatility", "SP500", "S&P 500 annualized volatility: 15%."},
	{"volatility", "Stocks", "Individual stocks annualized volatility: 25%."},
	{"volatility", "Bonds", "Bonds annualized volatility: 5%."},

	{"asset-risk-matrix", "US-Stocks", "US stocks: risk score 65, high return potential, high liquidity. Core growth driver for long-term wealth."},
	{"asset-risk-matrix", "International-Stocks", "International stocks: risk score 70, high return potential, high liquidity. Geographic diversification reduces country-specific risks."},
	{"asset-risk-matrix", "Bonds", "Bonds: risk score 25, moderate return potential, high liquidity. Stability cushion during market volatility."},
	{"asset-risk-matrix", "REITs", "REITs: risk score 55, moderate-high return potential, medium liquidity. Inflation hedge with real estate exposure."},
	{"asset-risk-matrix", "Gold", "Gold: risk score 35, low-moderate return potential, high liquidity. Safe haven asset for portfolio protection."},
	{"asset-risk-matrix", "Bitcoin", "Bitcoin: risk score 85, very high return potential, high liquidity. High volatility speculative digital asset."},
	{"asset-risk-matrix", "Solana", "Solana: risk score 90, very high return potential, medium liquidity. Higher risk than Bitcoin with growth potential."},

	{"portfolio-returns", "conservative", "Conservative portfolio (20/70/10 stock/bond/alt): about 5.5% annual return, 8% volatility."},
	{"portfolio-returns", "moderate", "Moderate portfolio (60/30/10 stock/bond/alt): about 7.5% annual return, 15% volatility."},
	{"portfolio-returns", "aggressive", "Aggressive portfolio (80/15/5 stock/bond/alt): about 9.2% annual return, 22% volatility."},

	{"market-sentiment", "bullish", "Market showing positive momentum. Good time for entry but watch for overvaluation."},
	{"market-sentiment", "bearish", "Market experiencing downward pressure. Focus on value and defensive positions."},
	{"market-sentiment", "sideways", "Market consolidating. Good time for rebalancing and DCA strategies."},

	{"wealth-projection", "monthly-5k-20years", "₹5,000/month for 20 years at 7.5%: ₹12L invested grows to about ₹27.7L."},
	{"wealth-projection", "monthly-10k-20years", "₹10,000/month for 20 years at 7.5%: ₹24L invested grows to about ₹55.4L."},
	{"wealth-projection", "monthly-25k-20years", "₹25,000/month for 20 years at 7.5%: ₹60L invested grows to about ₹1.38Cr."},

	{"expected-return", "Bitcoin", "Bitcoin expected annual return: 35%."},
	{"expected-return", "Ethereum", "Ethereum expected annual return: 30%."},
	{"expected-return", "Solana", "Solana expected annual return: 40%."},
	{"expected-return", "SP500", "S&P 500 expected annual return: 10%."},
	{"expected-return", "Stocks", "Individual stocks expected annual return: 12%."},
	{"expected-return", "Bonds", "Bonds expected annual return: 4%."},
	{"expected-return", "Real-Estate", "Real estate expected annual return: 8%."},

	{"age-strategy", "20s", "Aggressive growth: 80-90% stocks/crypto, 10-20% bonds. Long time horizon allows risk."},
	{"age-strategy", "30s", "Growth-focused: 70-80% stocks, 20-30% bonds. Balance growth with some stability."},
	{"age-strategy", "40s", "Balanced: 60% stocks, 30% bonds, 10% alternatives. Reduce risk as retirement nears."},
	{"age-strategy", "50s", "Conservative: 50% stocks, 40% bonds, 10% cash. Preserve capital for retirement."},

	{"crypto-feature", "Bitcoin", "First cryptocurrency. 21 million max supply. Digital gold narrative. Highest adoption."},
	{"crypto-feature", "Ethereum", "Smart contract platform. Powers DeFi and NFTs. Proof-of-Stake consensus."},
	{"crypto-feature", "Solana", "High-speed blockchain. Low transaction costs. Growing DeFi ecosystem. High performance."},

	{"compare-assets", "Bitcoin-SP500", "Bitcoin: Higher returns (35% avg) but 60% volatility. S&P 500: Stable 10% returns with 15% volatility."},
	{"compare-assets", "Crypto-Stocks", "Crypto offers explosive growth potential but extreme volatility. Stocks provide steady, proven returns."},

	{"risk-level", "conservative", "Low risk tolerance: 70% bonds, 30% blue-chip stocks. Capital preservation priority."},
	{"risk-level", "moderate", "Moderate risk: 60% stocks, 30% bonds, 10% alternatives. Balanced growth and stability."},
	{"risk-level", "aggressive", "High risk tolerance: 80% stocks/crypto, 20% bonds. Maximum growth potential."},

	{"retirement-rule", "four-percent", "Withdraw 4% annually from retirement corpus for sustainable income."},
	{"retirement-corpus-needed", "monthly-expense", "Need 300x monthly expenses for retirement. ₹50,000/month = ₹1.5 crore corpus."},

	{"data-source", "crypto", "CoinGecko API for real-time cryptocurrency prices."},
	{"data-source", "stocks", "Alpaca market data API for real-time stock prices."},

	{"comprehensive-risk", "Bitcoin", "Bitcoin risk factors: volatility 60, liquidity 85, regulatory clarity 70 (0-100 scale)."},
	{"comprehensive-risk", "Ethereum", "Ethereum risk factors: volatility 65, liquidity 80, regulatory clarity 65 (0-100 scale)."},
	{"comprehensive-risk", "Solana", "Solana risk factors: volatility 70, liquidity 60, regulatory clarity 50 (0-100 scale)."},
	{"comprehensive-risk", "SP500", "S&P 500 risk factors: volatility 15, liquidity 95, regulatory clarity 95 (0-100 scale)."},
	{"comprehensive-risk", "Bonds", "Bonds risk factors: volatility 5, liquidity 90, regulatory clarity 98 (0-100 scale)."},

	{"currency", "INR", "INR is the Indian Rupee."},
	{"currency", "USD", "USD is the US Dollar."},
	{"currency", "EUR", "EUR is the Euro."},
	{"conversion-rate", "USD-INR", "1 USD = 83.5 INR."},
	{"conversion-rate", "EUR-INR", "1 EUR = 91.2 INR."},
	{"conversion-rate", "USD-EUR", "1 USD = 0.92 EUR."},

	{"market-timing-rule", "bull-market", "During bull markets: Take profits gradually, rebalance to target allocations."},
	{"market-timing-rule", "bear-market", "During bear markets: Dollar-cost average, focus on quality assets."},
	{"market-timing-rule", "sideways-market", "During sideways markets: Accumulate positions, sell covered calls."},

	{"behavioral-bias", "loss-aversion", "Losses hurt 2x more than gains feel good. Combat by setting stop-losses."},
	{"behavioral-bias", "recency-bias", "Recent trends feel permanent. Remember: markets are cyclical."},
	{"behavioral-bias", "herd-mentality", "FOMO drives bad decisions. Stick to your investment plan."},
	{"behavioral-bias", "confirmation-bias", "We seek info confirming our beliefs. Actively seek opposing views."},

	{"rebalancing-trigger", "deviation", "Rebalance when any asset deviates >5% from target allocation."},
	{"rebalancing-frequency", "quarterly", "Review portfolio quarterly, rebalance if needed."},
	{"rebalancing-benefit", "risk-control", "Rebalancing forces 'buy low, sell high' discipline."},

	{"tax-strategy", "long-term-holdings", "Hold >1 year for long-term capital gains (lower tax rate)."},
	{"tax-strategy", "tax-loss-harvesting", "Sell losing positions to offset gains and reduce tax liability."},
	{"tax-strategy", "retirement-accounts", "Maximize tax-advantaged accounts (401k, IRA) before taxable investing."},

	{"emergency-scenario", "job-loss", "Keep 12 months expenses. Pause aggressive investing. Focus on essentials."},
	{"emergency-scenario", "market-crash", "Don't panic sell. Stick to plan. Consider buying opportunities."},
	{"emergency-scenario", "medical-emergency", "Use emergency fund first. Avoid liquidating long-term investments."},

	{"milestone", "first-10k", "First ₹10,000 invested: Foundation built. Focus on consistency now."},
	{"milestone", "first-lakh", "First ₹1 lakh: Real momentum. Compound interest accelerating."},
	{"milestone", "first-10-lakhs", "First ₹10 lakhs: Serious wealth building. Consider tax optimization."},
	{"milestone", "first-crore", "First ₹1 crore: Financial independence in sight. Diversify wisely."},
}

// LoadDefaults carga el conocimiento base. Es idempotente sobre un almacén
// que ya lo contiene.
func LoadDefaults(s *Store) error {
	for _, f := range defaultFacts {
		if err := s.Add(f.category, f.subject, f.text); err != nil {
			return fmt.Errorf("load %s: %w", Key(f.category, f.subject), err)
		}
	}
	return nil
}

// NewDefaultStore devuelve un almacén sellado con el conocimiento base.
func NewDefaultStore() (*Store, error) {
	s := NewStore()
	if err := LoadDefaults(s); err != nil {
		return nil, err
	}
	s.Seal()
	return s, nil
}
